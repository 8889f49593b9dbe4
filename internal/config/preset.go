package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jqrun/jq"
)

// Preset is an options file. Fields that are absent leave the current value
// unchanged.
//
//	raw_output: true
//	sort_keys: true
//	color: never          # auto | always | never | JQ_COLORS palette
//	indent: 4             # compact | tab | number of spaces
type Preset struct {
	RawOutput *bool  `yaml:"raw_output"`
	RawInput  *bool  `yaml:"raw_input"`
	Slurp     *bool  `yaml:"slurp"`
	SortKeys  *bool  `yaml:"sort_keys"`
	Color     string `yaml:"color"`
	Indent    any    `yaml:"indent"`
}

// LoadPreset reads and decodes a preset file. Unknown fields are rejected.
func LoadPreset(filename string) (Preset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return ParsePreset(data)
}

// ParsePreset decodes preset YAML.
func ParsePreset(data []byte) (Preset, error) {
	var p Preset
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.DisallowUnknownField()); err != nil {
		return Preset{}, fmt.Errorf("decode YAML: %w", err)
	}
	return p, nil
}

// apply layers the preset over opts and color.
func (p Preset) apply(opts jq.Options, color colorSetting) (jq.Options, colorSetting, error) {
	if p.RawOutput != nil {
		opts = opts.WithRawOutput(*p.RawOutput)
	}
	if p.RawInput != nil {
		opts = opts.WithRawInput(*p.RawInput)
	}
	if p.Slurp != nil {
		opts = opts.WithSlurp(*p.Slurp)
	}
	if p.SortKeys != nil {
		opts = opts.WithSortKeys(*p.SortKeys)
	}

	if p.Color != "" {
		c, err := parseColor(p.Color)
		if err != nil {
			return opts, color, err
		}
		color = c
	}

	if p.Indent != nil {
		indentation, err := parseIndent(p.Indent)
		if err != nil {
			return opts, color, err
		}
		opts = opts.WithIndentation(indentation)
	}

	return opts, color, nil
}

// parseIndent accepts "compact", "tab" or a space count given as a YAML
// integer or a numeric string.
func parseIndent(value any) (jq.Indentation, error) {
	switch v := value.(type) {
	case string:
		switch strings.TrimSpace(v) {
		case "compact":
			return jq.Compact{}, nil
		case "tab", "tabs":
			return jq.Tabs{}, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w, got: %s", ErrInvalidIndent, v)
		}
		return jq.Spaces(n), nil
	case int:
		return jq.Spaces(v), nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%w, got: %d", ErrInvalidIndent, v)
		}
		return jq.Spaces(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return nil, fmt.Errorf("%w, got: %d", ErrInvalidIndent, v)
		}
		return jq.Spaces(v), nil
	default:
		return nil, fmt.Errorf("%w, got: %v", ErrInvalidIndent, v)
	}
}
