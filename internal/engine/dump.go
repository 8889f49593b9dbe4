package engine

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// dumper writes engine values in jq's output format.
type dumper struct {
	buf   *bytes.Buffer
	order *keyOrder
	opts  DumpOptions
}

// result writes one top-level result followed by the record separator.
func (d *dumper) result(v any) error {
	if s, ok := v.(string); ok && d.opts.Flags.Has(DumpRaw) {
		d.buf.WriteString(s)
		d.buf.WriteByte('\n')
		return nil
	}

	if err := d.value(v, 0); err != nil {
		return err
	}
	d.buf.WriteByte('\n')
	return nil
}

func (d *dumper) value(v any, level int) error {
	switch v := v.(type) {
	case nil:
		d.colored(ColorNull, "null")
	case bool:
		if v {
			d.colored(ColorTrue, "true")
		} else {
			d.colored(ColorFalse, "false")
		}
	case int:
		d.colored(ColorNumber, strconv.Itoa(v))
	case float64:
		d.colored(ColorNumber, formatFloat(v))
	case *big.Int:
		d.colored(ColorNumber, v.String())
	case string:
		d.open(ColorString)
		writeString(d.buf, v)
		d.close()
	case []any:
		return d.array(v, level)
	case map[string]any:
		return d.object(v, level)
	default:
		return fmt.Errorf("cannot dump value of type %T", v)
	}
	return nil
}

func (d *dumper) array(v []any, level int) error {
	if len(v) == 0 {
		d.colored(ColorArray, "[]")
		return nil
	}

	d.colored(ColorArray, "[")
	for i, elem := range v {
		if i > 0 {
			d.colored(ColorArray, ",")
		}
		d.newline(level + 1)
		if err := d.value(elem, level+1); err != nil {
			return err
		}
	}
	d.newline(level)
	d.colored(ColorArray, "]")
	return nil
}

func (d *dumper) object(v map[string]any, level int) error {
	if len(v) == 0 {
		d.colored(ColorObject, "{}")
		return nil
	}

	var keys []string
	if d.opts.Flags.Has(DumpSorted) {
		keys = make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
	} else {
		keys = d.order.keys(v)
	}

	d.colored(ColorObject, "{")
	for i, k := range keys {
		if i > 0 {
			d.colored(ColorObject, ",")
		}
		d.newline(level + 1)
		d.open(ColorObjectKey)
		writeString(d.buf, k)
		d.close()
		d.colored(ColorObject, ":")
		if d.opts.Flags.Has(DumpPretty) {
			d.buf.WriteByte(' ')
		}
		if err := d.value(v[k], level+1); err != nil {
			return err
		}
	}
	d.newline(level)
	d.colored(ColorObject, "}")
	return nil
}

func (d *dumper) newline(level int) {
	if !d.opts.Flags.Has(DumpPretty) {
		return
	}
	d.buf.WriteByte('\n')
	if d.opts.Flags.Has(DumpTab) {
		d.buf.WriteString(strings.Repeat("\t", level))
		return
	}
	d.buf.WriteString(strings.Repeat(" ", level*d.opts.Indent))
}

func (d *dumper) open(color int) {
	if d.opts.Flags.Has(DumpColor) {
		d.buf.WriteString(d.opts.Palette[color])
	}
}

func (d *dumper) close() {
	if d.opts.Flags.Has(DumpColor) {
		d.buf.WriteString(reset)
	}
}

func (d *dumper) colored(color int, s string) {
	d.open(color)
	d.buf.WriteString(s)
	d.close()
}

// formatFloat follows jq: NaN is null, infinities clamp to the largest
// finite double, exponents are used outside [1e-6, 1e21).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "null"
	case f >= math.MaxFloat64:
		f = math.MaxFloat64
	case f <= -math.MaxFloat64:
		f = -math.MaxFloat64
	}

	format := byte('f')
	if x := math.Abs(f); x != 0 && (x < 1e-6 || x >= 1e21) {
		format = 'e'
	}
	buf := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// e-07 becomes e-7, matching jq.
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return string(buf)
}

// writeString writes s as a quoted JSON string, escaping control characters
// and DEL. Invalid UTF-8 is replaced with U+FFFD.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				buf.WriteString(`\"`)
			case '\\':
				buf.WriteString(`\\`)
			case '\n':
				buf.WriteString(`\n`)
			case '\t':
				buf.WriteString(`\t`)
			case '\r':
				buf.WriteString(`\r`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			default:
				if c < 0x20 || c == 0x7f {
					buf.WriteString(`\u00`)
					buf.WriteByte(hexDigits[c>>4])
					buf.WriteByte(hexDigits[c&0xf])
				} else {
					buf.WriteByte(c)
				}
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}
