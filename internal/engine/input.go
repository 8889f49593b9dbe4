package engine

import (
	"encoding/json"
	"io"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// recordReader yields input records one at a time.
// It returns io.EOF once the input is exhausted.
type recordReader interface {
	next() (any, error)
}

func newRecordReader(input string, flags ParseFlags, order *keyOrder) recordReader {
	if flags.Has(ParseRaw) {
		if flags.Has(ParseSlurp) {
			return &onceReader{value: input}
		}
		return &lineReader{rest: input}
	}

	r := &jsonReader{
		dec:   json.NewDecoder(strings.NewReader(input)),
		order: order,
	}
	r.dec.UseNumber()

	if flags.Has(ParseSlurp) {
		return &slurpReader{src: r}
	}
	return r
}

// lineReader yields each line as a string. A trailing newline does not
// produce an extra empty record.
type lineReader struct {
	rest string
}

func (r *lineReader) next() (any, error) {
	if r.rest == "" {
		return nil, io.EOF
	}

	line, rest, found := strings.Cut(r.rest, "\n")
	if !found {
		rest = ""
	}
	r.rest = rest
	return line, nil
}

// onceReader yields a single prepared value.
type onceReader struct {
	value any
	done  bool
}

func (r *onceReader) next() (any, error) {
	if r.done {
		return nil, io.EOF
	}
	r.done = true
	return r.value, nil
}

// slurpReader drains src into one array record.
type slurpReader struct {
	src  recordReader
	done bool
}

func (r *slurpReader) next() (any, error) {
	if r.done {
		return nil, io.EOF
	}
	r.done = true

	values := []any{}
	for {
		v, err := r.src.next()
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// Container kinds tracked while decoding.
const (
	kindObj containerKind = iota
	kindArr
)

type containerKind uint8

// containerFrame is an object or array being assembled.
type containerFrame struct {
	obj     map[string]any
	keys    []string // object keys in source order, duplicates once
	key     string   // last key read for an object
	arr     []any
	kind    containerKind
	needKey bool // true if object expects a key next
}

// frameStack holds the containers enclosing the current token.
type frameStack struct {
	items []containerFrame
}

func (s *frameStack) push(f containerFrame) {
	s.items = append(s.items, f)
}

func (s *frameStack) pop() (containerFrame, bool) {
	if len(s.items) == 0 {
		return containerFrame{}, false
	}
	index := len(s.items) - 1
	f := s.items[index]
	s.items = s.items[:index]
	return f, true
}

// top allows modifying the innermost frame in place.
func (s *frameStack) top() *containerFrame {
	if len(s.items) == 0 {
		return nil
	}
	return &s.items[len(s.items)-1]
}

func (s *frameStack) isEmpty() bool {
	return len(s.items) == 0
}

// jsonReader decodes a stream of whitespace-separated JSON values token by
// token, recording the key order of every object it builds.
type jsonReader struct {
	dec    *json.Decoder
	order  *keyOrder
	frames frameStack
}

func (r *jsonReader) next() (any, error) {
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			if r.frames.isEmpty() {
				return nil, io.EOF
			}
			return nil, errors.Wrap(io.ErrUnexpectedEOF, "invalid JSON input")
		}
		if err != nil {
			return nil, errors.Wrap(err, "invalid JSON input")
		}

		var value any
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				r.frames.push(containerFrame{kind: kindObj, obj: map[string]any{}, needKey: true})
				continue
			case '[':
				r.frames.push(containerFrame{kind: kindArr, arr: []any{}})
				continue
			case '}':
				f, _ := r.frames.pop()
				r.order.record(f.obj, f.keys)
				value = f.obj
			case ']':
				f, _ := r.frames.pop()
				value = f.arr
			}
		case string:
			if top := r.frames.top(); top != nil && top.kind == kindObj && top.needKey {
				if _, dup := top.obj[t]; !dup {
					top.keys = append(top.keys, t)
				}
				top.key = t
				top.needKey = false
				r.order.see(t)
				continue
			}
			value = t
		case json.Number:
			value = normalizeNumber(t)
		default:
			value = t
		}

		top := r.frames.top()
		if top == nil {
			return value, nil
		}
		if top.kind == kindObj {
			top.obj[top.key] = value
			top.needKey = true
		} else {
			top.arr = append(top.arr, value)
		}
	}
}

// normalizeNumber converts a decoded number into the representations the
// engine works with: int, *big.Int or float64.
func normalizeNumber(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		// ParseInt drops the sign of -0.
		if s == "-0" {
			return math.Copysign(0, -1)
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b
		}
	}

	// Out of range values come back as ±Inf, which the dumper clamps.
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// keyOrder remembers the source key order of every decoded object, keyed by
// map identity. The engine passes unmodified input objects through as the
// same map, so those are written in their own order. Objects the program
// builds or changes fall back to rank: keys by first appearance anywhere in
// the input, then unseen keys in lexical order.
type keyOrder struct {
	rank    map[string]int
	objects map[unsafe.Pointer][]string
}

func newKeyOrder() *keyOrder {
	return &keyOrder{
		rank:    make(map[string]int),
		objects: make(map[unsafe.Pointer][]string),
	}
}

func (o *keyOrder) see(key string) {
	if _, ok := o.rank[key]; !ok {
		o.rank[key] = len(o.rank)
	}
}

func (o *keyOrder) record(obj map[string]any, keys []string) {
	if len(obj) == 0 {
		return
	}
	o.objects[reflect.ValueOf(obj).UnsafePointer()] = keys
}

// keys returns the keys of obj in output order.
func (o *keyOrder) keys(obj map[string]any) []string {
	if recorded, ok := o.objects[reflect.ValueOf(obj).UnsafePointer()]; ok && sameKeys(recorded, obj) {
		return slices.Clone(recorded)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, o.compare)
	return keys
}

func sameKeys(keys []string, obj map[string]any) bool {
	if len(keys) != len(obj) {
		return false
	}
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}

// compare orders known keys by rank, ahead of unknown keys in lexical order.
func (o *keyOrder) compare(a, b string) int {
	ra, okA := o.rank[a]
	rb, okB := o.rank[b]
	switch {
	case okA && okB:
		return ra - rb
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// inputIter exposes the remaining records to the input and inputs builtins.
// It implements gojq.Iter; read errors are yielded as values.
type inputIter struct {
	src recordReader
	err error
}

func (it *inputIter) Next() (any, bool) {
	if it.src == nil || it.err != nil {
		return nil, false
	}
	v, err := it.src.next()
	if errors.Is(err, io.EOF) {
		return nil, false
	}
	if err != nil {
		it.err = errors.Mark(err, ErrEvaluate)
		return it.err, true
	}
	return v, true
}
