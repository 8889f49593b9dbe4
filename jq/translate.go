package jq

import (
	"fmt"

	"github.com/jacoelho/jqrun/internal/engine"
)

// native is an Options value translated into the engine's flag sets.
type native struct {
	parse engine.ParseFlags
	dump  engine.DumpOptions
}

// translate validates o and maps it onto engine flags. It never touches an
// engine context; every error it returns is a configuration error.
func translate(o Options) (native, error) {
	var n native

	if o.RawInput() {
		n.parse |= engine.ParseRaw
	}
	if o.Slurp() {
		n.parse |= engine.ParseSlurp
	}
	if o.RawOutput() {
		n.dump.Flags |= engine.DumpRaw
	}
	if o.SortKeys() {
		n.dump.Flags |= engine.DumpSorted
	}

	switch c := o.Colorization().(type) {
	case Monochrome:
	case Colorize:
		n.dump.Flags |= engine.DumpColor
		n.dump.Palette = engine.DefaultPalette()
	case Custom:
		palette, err := engine.ParsePalette(c.Palette)
		if err != nil {
			return native{}, newError(KindConfiguration, err)
		}
		n.dump.Flags |= engine.DumpColor
		n.dump.Palette = palette
	default:
		return native{}, &Error{
			Kind:       KindConfiguration,
			Diagnostic: fmt.Sprintf("unsupported colorization %T", c),
		}
	}

	switch i := o.Indentation().(type) {
	case Compact:
	case Tabs:
		n.dump.Flags |= engine.DumpPretty | engine.DumpTab
	case Spaces:
		if i < 0 {
			return native{}, &Error{
				Kind:       KindConfiguration,
				Diagnostic: fmt.Sprintf("indentation must not be negative, got %d spaces", int(i)),
			}
		}
		if i > 0 {
			n.dump.Flags |= engine.DumpPretty
			n.dump.Indent = int(i)
		}
	default:
		return native{}, &Error{
			Kind:       KindConfiguration,
			Diagnostic: fmt.Sprintf("unsupported indentation %T", i),
		}
	}

	return n, nil
}
