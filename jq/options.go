package jq

import (
	"fmt"
	"strings"
)

// Colorization controls ANSI colour decoration of the output.
// The variants are Custom, Colorize and Monochrome; no other type satisfies it.
type Colorization interface {
	colorization()
	fmt.Stringer
}

// Custom colourises output with a palette in JQ_COLORS syntax,
// for example "1;30:0;39:0;39:0;39:0;32:1;39:1;39:34;1".
type Custom struct {
	Palette string
}

// Colorize colourises output with the engine's default palette.
type Colorize struct{}

// Monochrome disables colour.
type Monochrome struct{}

func (Custom) colorization()     {}
func (Colorize) colorization()   {}
func (Monochrome) colorization() {}

func (c Custom) String() string   { return fmt.Sprintf("custom(%q)", c.Palette) }
func (Colorize) String() string   { return "colorize" }
func (Monochrome) String() string { return "monochrome" }

// Indentation controls pretty-printing whitespace.
// The variants are Compact, Tabs and Spaces; no other type satisfies it.
type Indentation interface {
	indentation()
	fmt.Stringer
}

// Compact writes each result on a single line.
type Compact struct{}

// Tabs indents nested values with one tab per level.
type Tabs struct{}

// Spaces indents nested values with the given number of spaces per level.
// Spaces(0) is equivalent to Compact. Negative counts are rejected when the
// options are used.
type Spaces int

func (Compact) indentation() {}
func (Tabs) indentation()    {}
func (Spaces) indentation()  {}

func (Compact) String() string  { return "compact" }
func (Tabs) String() string     { return "tabs" }
func (s Spaces) String() string { return fmt.Sprintf("spaces(%d)", int(s)) }

// Options describes how input is read and output is rendered for one invocation.
//
// Options is a value type: the With methods return a modified copy and never
// change the receiver, so a value can be shared between goroutines freely.
// The zero value is equivalent to Default().
type Options struct {
	rawOutput    bool
	rawInput     bool
	slurp        bool
	sortKeys     bool
	colorization Colorization
	indentation  Indentation
}

// Default returns the baseline options: every flag off, monochrome, compact.
func Default() Options {
	return Options{
		colorization: Monochrome{},
		indentation:  Compact{},
	}
}

// RawOutput reports whether string results are written without quoting.
func (o Options) RawOutput() bool { return o.rawOutput }

// RawInput reports whether each input line is read as a string instead of JSON.
func (o Options) RawInput() bool { return o.rawInput }

// Slurp reports whether all input is combined into a single array (or string).
func (o Options) Slurp() bool { return o.slurp }

// SortKeys reports whether object keys are written in sorted order.
func (o Options) SortKeys() bool { return o.sortKeys }

// Colorization returns the active colour variant.
func (o Options) Colorization() Colorization {
	if o.colorization == nil {
		return Monochrome{}
	}
	return o.colorization
}

// Indentation returns the active indentation variant.
func (o Options) Indentation() Indentation {
	if o.indentation == nil {
		return Compact{}
	}
	return o.indentation
}

// WithRawOutput returns a copy of o with raw output set.
func (o Options) WithRawOutput(rawOutput bool) Options {
	o.rawOutput = rawOutput
	return o
}

// WithRawInput returns a copy of o with raw input set.
func (o Options) WithRawInput(rawInput bool) Options {
	o.rawInput = rawInput
	return o
}

// WithSlurp returns a copy of o with slurp set.
func (o Options) WithSlurp(slurp bool) Options {
	o.slurp = slurp
	return o
}

// WithSortKeys returns a copy of o with key sorting set.
func (o Options) WithSortKeys(sortKeys bool) Options {
	o.sortKeys = sortKeys
	return o
}

// WithColorization returns a copy of o using c. A nil c selects Monochrome.
func (o Options) WithColorization(c Colorization) Options {
	if c == nil {
		c = Monochrome{}
	}
	o.colorization = c
	return o
}

// WithIndentation returns a copy of o using i. A nil i selects Compact.
func (o Options) WithIndentation(i Indentation) Options {
	if i == nil {
		i = Compact{}
	}
	o.indentation = i
	return o
}

func (o Options) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "raw_output=%t raw_input=%t slurp=%t sort_keys=%t",
		o.rawOutput, o.rawInput, o.slurp, o.sortKeys)
	fmt.Fprintf(&b, " colorization=%s indentation=%s", o.Colorization(), o.Indentation())
	return b.String()
}
