package constraints

import (
	"strconv"
	"testing"

	"github.com/jacoelho/jqrun/internal/config"
	"github.com/jacoelho/jqrun/internal/exit"
	"github.com/jacoelho/jqrun/jq"
)

func TestCLIAndLibraryShareIndentationRules(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-3, -1, 0, 1, 2, 7, 8} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			t.Parallel()

			libErr := jq.Validate(jq.Default().WithIndentation(jq.Spaces(n)))
			_, result := config.Parse([]string{"jqrun", "--indent", strconv.Itoa(n), "."}, config.Environment{})

			if (libErr != nil) != (result != nil) {
				t.Fatalf("jq.Validate error = %v, config.Parse result = %+v", libErr, result)
			}
			if result != nil && result.ExitCode != exit.CodeUsage {
				t.Fatalf("config.Parse exit code = %d, want %d", result.ExitCode, exit.CodeUsage)
			}
		})
	}
}

func TestCLIAndLibrarySharePaletteRules(t *testing.T) {
	t.Parallel()

	palettes := []string{
		"",
		"0;31",
		"0;31:0;32:",
		"1;30:0;39:0;39:0;39:0;32:1;39:1;39:34;1",
		"1;30:0;39:0;39:0;39:0;32:1;39:1;39:34;1:0",
		"red",
		"0;31;32;33;34;35",
	}

	for _, palette := range palettes {
		t.Run(palette, func(t *testing.T) {
			t.Parallel()

			libErr := jq.Validate(jq.Default().WithColorization(jq.Custom{Palette: palette}))
			_, result := config.Parse([]string{"jqrun", "-C", "."}, config.Environment{Colors: palette})

			// An empty JQ_COLORS means the default palette to the CLI
			if palette == "" {
				if result != nil {
					t.Fatalf("config.Parse result = %+v, want success", result)
				}
				return
			}
			if (libErr != nil) != (result != nil) {
				t.Fatalf("jq.Validate error = %v, config.Parse result = %+v", libErr, result)
			}
		})
	}
}
