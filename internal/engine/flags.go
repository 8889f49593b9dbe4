package engine

import "strings"

// ParseFlags selects how the input payload is split into records.
type ParseFlags uint8

const (
	// ParseRaw reads each input line as a string instead of JSON.
	ParseRaw ParseFlags = 1 << iota
	// ParseSlurp combines all records into a single array (or string when raw).
	ParseSlurp
)

// DumpFlags selects how results are written.
type DumpFlags uint8

const (
	// DumpPretty writes nested values on separate lines.
	DumpPretty DumpFlags = 1 << iota
	// DumpTab indents pretty output with tabs instead of spaces.
	DumpTab
	// DumpColor decorates output with the palette's escape sequences.
	DumpColor
	// DumpSorted writes object keys in lexical order.
	DumpSorted
	// DumpRaw writes top-level string results without quotes or escapes.
	DumpRaw
)

// DumpOptions is the complete native output configuration.
type DumpOptions struct {
	Palette Palette
	Flags   DumpFlags
	Indent  int // spaces per level, used when DumpPretty is set without DumpTab
}

// Has reports whether all bits of f are set.
func (d DumpFlags) Has(f DumpFlags) bool {
	return d&f == f
}

// Has reports whether all bits of f are set.
func (p ParseFlags) Has(f ParseFlags) bool {
	return p&f == f
}

func (p ParseFlags) String() string {
	var names []string
	if p.Has(ParseRaw) {
		names = append(names, "raw")
	}
	if p.Has(ParseSlurp) {
		names = append(names, "slurp")
	}
	if len(names) == 0 {
		return "json"
	}
	return strings.Join(names, "|")
}

func (d DumpFlags) String() string {
	var names []string
	for _, f := range []struct {
		flag DumpFlags
		name string
	}{
		{DumpPretty, "pretty"},
		{DumpTab, "tab"},
		{DumpColor, "color"},
		{DumpSorted, "sorted"},
		{DumpRaw, "raw"},
	} {
		if d.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "compact"
	}
	return strings.Join(names, "|")
}
