package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jacoelho/jqrun/internal/exit"
	"github.com/jacoelho/jqrun/jq"
)

// DefaultIndent is the indentation used when no indentation flag is given.
const DefaultIndent = 2

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrNoProgram        = errors.New("no filter program specified")
	ErrConflictingColor = errors.New("--color-output and --monochrome-output cannot be combined")
	ErrInvalidColor     = errors.New(`color must be "auto", "always", "never" or a JQ_COLORS palette`)
	ErrInvalidIndent    = errors.New(`indent must be "compact", "tab" or a number of spaces`)
)

// Config represents the complete configuration for the jqrun tool.
type Config struct {
	Program    string
	InputFiles []string
	Options    jq.Options
	Debug      bool
}

// Environment carries the process state that influences colour output.
type Environment struct {
	Colors   string // JQ_COLORS
	NoColor  bool   // NO_COLOR is set
	Terminal bool   // stdout is a terminal
}

// SystemEnvironment reads the environment of the current process.
func SystemEnvironment() Environment {
	_, noColor := os.LookupEnv("NO_COLOR")
	return Environment{
		Colors:   os.Getenv("JQ_COLORS"),
		NoColor:  noColor,
		Terminal: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// colorMode is the user's colour choice before the environment is consulted.
type colorMode uint8

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

// colorSetting is a colour mode plus an optional explicit palette.
type colorSetting struct {
	palette string
	mode    colorMode
}

// resolve turns the setting into a Colorization for env.
func (c colorSetting) resolve(env Environment) jq.Colorization {
	if c.mode == colorNever || c.mode == colorAuto && (!env.Terminal || env.NoColor) {
		return jq.Monochrome{}
	}
	if c.palette != "" {
		return jq.Custom{Palette: c.palette}
	}
	if env.Colors != "" {
		return jq.Custom{Palette: env.Colors}
	}
	return jq.Colorize{}
}

func parseColor(value string) (colorSetting, error) {
	switch strings.TrimSpace(value) {
	case "", "auto":
		return colorSetting{mode: colorAuto}, nil
	case "always":
		return colorSetting{mode: colorAlways}, nil
	case "never":
		return colorSetting{mode: colorNever}, nil
	}
	if strings.ContainsFunc(value, func(r rune) bool {
		return r != ':' && r != ';' && (r < '0' || r > '9')
	}) {
		return colorSetting{}, fmt.Errorf("%w, got: %s", ErrInvalidColor, value)
	}
	return colorSetting{mode: colorAlways, palette: value}, nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string, env Environment) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s\n", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		rawOutput, rawInput, slurp, sortKeys bool
		colorOut, monochrome, compact        bool
		tab                                  = fs.Bool("tab", false, "Indent with tabs")
		indent                               = fs.Int("indent", DefaultIndent, "Indent with N spaces")
		presetFile                           = fs.String("options", "", "Path to a YAML options preset")
		programFile                          string
		debug                                = fs.Bool("debug", false, "Write debug logs to stderr")
	)

	fs.BoolVar(&rawOutput, "r", false, "Output raw strings")
	fs.BoolVar(&rawOutput, "raw-output", false, "Output raw strings")
	fs.BoolVar(&rawInput, "R", false, "Read each input line as a string")
	fs.BoolVar(&rawInput, "raw-input", false, "Read each input line as a string")
	fs.BoolVar(&slurp, "s", false, "Read all inputs into one array")
	fs.BoolVar(&slurp, "slurp", false, "Read all inputs into one array")
	fs.BoolVar(&sortKeys, "S", false, "Sort object keys")
	fs.BoolVar(&sortKeys, "sort-keys", false, "Sort object keys")
	fs.BoolVar(&colorOut, "C", false, "Colorize output")
	fs.BoolVar(&colorOut, "color-output", false, "Colorize output")
	fs.BoolVar(&monochrome, "M", false, "Disable colors")
	fs.BoolVar(&monochrome, "monochrome-output", false, "Disable colors")
	fs.BoolVar(&compact, "c", false, "Compact output")
	fs.BoolVar(&compact, "compact-output", false, "Compact output")
	fs.StringVar(&programFile, "f", "", "Read the filter program from a file")
	fs.StringVar(&programFile, "from-file", "", "Read the filter program from a file")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage() + "\n")
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s\n", err, Usage())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if colorOut && monochrome {
		return nil, exit.Errorf("Error: %v\n", ErrConflictingColor)
	}

	// Defaults first, then the preset file, then command-line flags
	opts := jq.Default().WithIndentation(jq.Spaces(DefaultIndent))
	color := colorSetting{mode: colorAuto}

	if *presetFile != "" {
		p, err := LoadPreset(*presetFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load options preset: %v\n", err)
		}
		if opts, color, err = p.apply(opts, color); err != nil {
			return nil, exit.Errorf("Error: invalid options preset %s: %v\n", *presetFile, err)
		}
	}

	if rawOutput {
		opts = opts.WithRawOutput(true)
	}
	if rawInput {
		opts = opts.WithRawInput(true)
	}
	if slurp {
		opts = opts.WithSlurp(true)
	}
	if sortKeys {
		opts = opts.WithSortKeys(true)
	}

	switch {
	case compact:
		opts = opts.WithIndentation(jq.Compact{})
	case *tab:
		opts = opts.WithIndentation(jq.Tabs{})
	case set["indent"]:
		opts = opts.WithIndentation(jq.Spaces(*indent))
	}

	switch {
	case colorOut:
		color.mode = colorAlways
	case monochrome:
		color.mode = colorNever
	}
	opts = opts.WithColorization(color.resolve(env))

	// Remaining positional arguments: program (unless read from file), then inputs
	positional := fs.Args()
	var program string
	if programFile != "" {
		data, err := os.ReadFile(programFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to read program file: %v\n", err)
		}
		program = string(data)
	} else {
		if len(positional) == 0 {
			return nil, exit.Errorf("Error: %v\n\n%s\n", ErrNoProgram, Usage())
		}
		program, positional = positional[0], positional[1:]
	}

	config := &Config{
		Program:    program,
		InputFiles: positional,
		Options:    opts,
		Debug:      *debug,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	return config, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Program) == "" {
		return ErrNoProgram
	}

	for _, file := range c.InputFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	return jq.Validate(c.Options)
}

// ReadInput returns the concatenated contents of the input files, or all of
// stdin when no files were given. Files are separated by a newline when the
// previous one does not end with one.
func (c *Config) ReadInput(stdin io.Reader) (string, error) {
	if len(c.InputFiles) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	var b strings.Builder
	for _, file := range c.InputFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", file, err)
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.Write(data)
	}
	return b.String(), nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jqrun - run jq filter programs

Usage: jqrun [options] <program> [file...]
       jqrun [options] -f <program-file> [file...]

Options:
  -r, --raw-output          Write string results without quotes
  -R, --raw-input           Read each input line as a string instead of JSON
  -s, --slurp               Read all inputs into one array (one string with -R)
  -S, --sort-keys           Write object keys in sorted order
  -C, --color-output        Colorize output (uses JQ_COLORS when set)
  -M, --monochrome-output   Disable colors
  -c, --compact-output      Write each result on one line
      --tab                 Indent with tabs
      --indent N            Indent with N spaces (default: 2)
  -f, --from-file FILE      Read the filter program from FILE
      --options FILE        Load options from a YAML preset file
      --debug               Write debug logs to stderr
  -h, --help                Show this help message

Colors are enabled automatically when stdout is a terminal and NO_COLOR is unset.

Examples:
  echo '{"a":1}' | jqrun .a              # Extract a field
  jqrun -r '.[].name' users.json         # Print names without quotes
  jqrun -s 'map(.id)' a.json b.json      # Combine inputs into one array
  jqrun -R -s 'split("\n")' notes.txt    # Read a text file as one string`
}
