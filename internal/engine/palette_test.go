package engine

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestParsePalette(t *testing.T) {
	t.Parallel()

	defaults := DefaultPalette()

	tests := []struct {
		name    string
		palette string
		want    map[int]string // fields expected to differ from the default
		wantErr bool
	}{
		{
			name:    "empty_is_default",
			palette: "",
		},
		{
			name:    "first_field",
			palette: "0;31",
			want:    map[int]string{ColorNull: "\x1b[0;31m"},
		},
		{
			name:    "all_fields",
			palette: "1:2:3:4:5:6:7:8",
			want:    map[int]string{
				ColorNull:      "\x1b[1m",
				ColorFalse:     "\x1b[2m",
				ColorTrue:      "\x1b[3m",
				ColorNumber:    "\x1b[4m",
				ColorString:    "\x1b[5m",
				ColorArray:     "\x1b[6m",
				ColorObject:    "\x1b[7m",
				ColorObjectKey: "\x1b[8m",
			},
		},
		{
			name:    "trailing_colon",
			palette: "0;31:",
			want:    map[int]string{ColorNull: "\x1b[0;31m"},
		},
		{
			name:    "empty_middle_field",
			palette: "0;31::0;33",
			want:    map[int]string{
				ColorNull:  "\x1b[0;31m",
				ColorFalse: "\x1b[m",
				ColorTrue:  "\x1b[0;33m",
			},
		},
		{
			name:    "longest_field",
			palette: "1;2;3;4;5;67",
			want:    map[int]string{ColorNull: "\x1b[1;2;3;4;5;67m"},
		},
		{
			name:    "field_too_long",
			palette: "1;2;3;4;5;678",
			wantErr: true,
		},
		{
			name:    "letters",
			palette: "red",
			wantErr: true,
		},
		{
			name:    "escape_injection",
			palette: "0;31m\x1b[2J",
			wantErr: true,
		},
		{
			name:    "too_many_fields",
			palette: "1:1:1:1:1:1:1:1:1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePalette(tt.palette)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePalette(%q) error = %v, wantErr %v", tt.palette, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrPalette) {
					t.Fatalf("ParsePalette(%q) error = %v, want ErrPalette", tt.palette, err)
				}
				if len(errors.GetAllHints(err)) == 0 {
					t.Fatalf("ParsePalette(%q) error has no hint", tt.palette)
				}
				return
			}

			for i := range got {
				want := defaults[i]
				if w, ok := tt.want[i]; ok {
					want = w
				}
				if got[i] != want {
					t.Errorf("field %d = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}

func TestDefaultPalette(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	if p[ColorString] != "\x1b[0;32m" {
		t.Errorf("string color = %q", p[ColorString])
	}
	if p[ColorObjectKey] != "\x1b[34;1m" {
		t.Errorf("object key color = %q", p[ColorObjectKey])
	}
}
