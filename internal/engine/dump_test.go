package engine

import (
	"bytes"
	"math"
	"math/big"
	"testing"
)

func TestDumper(t *testing.T) {
	t.Parallel()

	order := newKeyOrder()
	order.see("b")
	order.see("a")

	tests := []struct {
		name  string
		value any
		opts  DumpOptions
		want  string
	}{
		{name: "null", value: nil, want: "null\n"},
		{name: "bools", value: []any{true, false}, want: "[true,false]\n"},
		{name: "int", value: -42, want: "-42\n"},
		{name: "big_int", value: new(big.Int).Lsh(big.NewInt(1), 80), want: "1208925819614629174706176\n"},
		{name: "float", value: 0.25, want: "0.25\n"},
		{name: "integral_float", value: 3.0, want: "3\n"},
		{name: "small_float", value: 1e-7, want: "1e-7\n"},
		{name: "large_float", value: 1e21, want: "1e+21\n"},
		{name: "nan", value: math.NaN(), want: "null\n"},
		{name: "negative_zero", value: math.Copysign(0, -1), want: "-0\n"},
		{name: "negative_infinity", value: math.Inf(-1), want: "-1.7976931348623157e+308\n"},
		{name: "unicode_passthrough", value: "héllo ✓", want: "\"héllo ✓\"\n"},
		{name: "invalid_utf8", value: "a\xffb", want: "\"a\ufffdb\"\n"},
		{name: "source_order", value: map[string]any{"a": 1, "b": 2, "c": 3}, want: "{\"b\":2,\"a\":1,\"c\":3}\n"},
		{
			name:  "sorted",
			value: map[string]any{"a": 1, "b": 2, "c": 3},
			opts:  DumpOptions{Flags: DumpSorted},
			want:  "{\"a\":1,\"b\":2,\"c\":3}\n",
		},
		{
			name:  "raw_string",
			value: "line\tone",
			opts:  DumpOptions{Flags: DumpRaw},
			want:  "line\tone\n",
		},
		{
			name:  "raw_nested_string_is_quoted",
			value: []any{"x"},
			opts:  DumpOptions{Flags: DumpRaw},
			want:  "[\"x\"]\n",
		},
		{
			name:  "pretty_three_spaces",
			value: []any{map[string]any{"a": nil}},
			opts:  DumpOptions{Flags: DumpPretty, Indent: 3},
			want:  "[\n   {\n      \"a\": null\n   }\n]\n",
		},
		{
			name:  "tab_ignores_indent_width",
			value: []any{1},
			opts:  DumpOptions{Flags: DumpPretty | DumpTab, Indent: 8},
			want:  "[\n\t1\n]\n",
		},
		{
			name:  "color_object",
			value: map[string]any{"a": "x"},
			opts:  DumpOptions{Flags: DumpColor, Palette: DefaultPalette()},
			want: "\x1b[1;39m{\x1b[0m" +
				"\x1b[34;1m\"a\"\x1b[0m" +
				"\x1b[1;39m:\x1b[0m" +
				"\x1b[0;32m\"x\"\x1b[0m" +
				"\x1b[1;39m}\x1b[0m\n",
		},
		{
			name:  "color_empty_array",
			value: []any{},
			opts:  DumpOptions{Flags: DumpColor, Palette: DefaultPalette()},
			want:  "\x1b[1;39m[]\x1b[0m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			d := &dumper{buf: &buf, order: order, opts: tt.opts}
			if err := d.result(tt.value); err != nil {
				t.Fatalf("result() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("result() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestDumperRejectsUnknownTypes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := &dumper{buf: &buf, order: newKeyOrder()}
	if err := d.result(struct{}{}); err == nil {
		t.Fatal("result() expected error for struct value")
	}
}
