package engine

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Palette positions, in JQ_COLORS field order.
const (
	ColorNull = iota
	ColorFalse
	ColorTrue
	ColorNumber
	ColorString
	ColorArray
	ColorObject
	ColorObjectKey
	paletteSize
)

const (
	escape = "\x1b["
	reset  = "\x1b[0m"

	// maxFieldLen is the longest SGR parameter list accepted in one field.
	maxFieldLen = 12
)

// Palette holds one complete escape sequence per value type.
type Palette [paletteSize]string

var defaultFields = [paletteSize]string{
	ColorNull:      "1;30",
	ColorFalse:     "0;39",
	ColorTrue:      "0;39",
	ColorNumber:    "0;39",
	ColorString:    "0;32",
	ColorArray:     "1;39",
	ColorObject:    "1;39",
	ColorObjectKey: "34;1",
}

// DefaultPalette returns the palette used when colour is on and no custom
// palette is given.
func DefaultPalette() Palette {
	var p Palette
	for i, field := range defaultFields {
		p[i] = escape + field + "m"
	}
	return p
}

// ParsePalette parses a palette in JQ_COLORS syntax: up to eight
// colon-separated fields (null, false, true, numbers, strings, arrays, objects,
// object keys), each made of digits and ';'. Fields that are not given keep
// their default. An empty palette yields the default palette.
func ParsePalette(palette string) (Palette, error) {
	p := DefaultPalette()
	if palette == "" {
		return p, nil
	}

	fields := strings.Split(strings.TrimSuffix(palette, ":"), ":")
	if len(fields) > paletteSize {
		err := errors.Newf("palette has %d fields, at most %d are supported", len(fields), paletteSize)
		return Palette{}, errors.Mark(errors.WithHint(err,
			"fields are: null:false:true:numbers:strings:arrays:objects:object keys"), ErrPalette)
	}

	for i, field := range fields {
		if len(field) > maxFieldLen {
			err := errors.Newf("palette field %d is too long: %q", i+1, field)
			return Palette{}, errors.Mark(errors.WithHintf(err,
				"a field holds at most %d characters", maxFieldLen), ErrPalette)
		}
		for _, c := range field {
			if c != ';' && (c < '0' || c > '9') {
				err := errors.Newf("palette field %d contains invalid character %q", i+1, c)
				return Palette{}, errors.Mark(errors.WithHint(err,
					"fields contain only digits and ';', for example 1;31"), ErrPalette)
			}
		}
		p[i] = escape + field + "m"
	}

	return p, nil
}
