package engine

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/itchyny/gojq"
)

// live counts handles that were opened and not yet released.
var live atomic.Int64

// Live returns the number of open States and Programs in the process.
func Live() int64 {
	return live.Load()
}

// Output is the result of one evaluation.
type Output struct {
	Text    string
	Results int
}

// State is an evaluation context. It owns the key order of the input it
// reads, the input iterator shared with the input/inputs builtins and the
// output buffer. A State serves a single invocation and is not safe for
// concurrent use.
type State struct {
	order  *keyOrder
	inputs *inputIter
	out    *bytes.Buffer
	closed bool
}

// New opens an evaluation context. The caller must Close it.
func New() *State {
	live.Add(1)
	return &State{
		order:  newKeyOrder(),
		inputs: &inputIter{},
		out:    new(bytes.Buffer),
	}
}

// Close releases the context and its buffers. It is safe to call more than once.
func (s *State) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.order = nil
	s.inputs = nil
	s.out = nil
	live.Add(-1)
	return nil
}

// Program is a filter compiled against a State.
type Program struct {
	code   *gojq.Code
	state  *State
	closed bool
}

// Close releases the compiled program. It is safe to call more than once.
func (p *Program) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.code = nil
	p.state = nil
	live.Add(-1)
	return nil
}

// Compile parses and compiles program against s. Errors are marked with
// ErrCompile and carry the engine's diagnostic as their message.
func (s *State) Compile(program string) (*Program, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if strings.TrimSpace(program) == "" {
		return nil, errors.Mark(errors.New("empty program"), ErrCompile)
	}

	query, err := gojq.Parse(program)
	if err != nil {
		return nil, errors.Mark(err, ErrCompile)
	}

	code, err := gojq.Compile(query,
		gojq.WithEnvironLoader(os.Environ),
		gojq.WithInputIter(s.inputs),
	)
	if err != nil {
		return nil, errors.Mark(err, ErrCompile)
	}

	live.Add(1)
	return &Program{code: code, state: s}, nil
}

// Evaluate runs p once per input record and dumps every result. The first
// error stops evaluation; no partial output is returned with it.
func (s *State) Evaluate(p *Program, input string, parse ParseFlags, dump DumpOptions) (Output, error) {
	if s.closed || p.closed {
		return Output{}, ErrClosed
	}
	if p.state != s {
		return Output{}, errors.New("engine: program was compiled against another state")
	}

	s.inputs.src = newRecordReader(input, parse, s.order)
	d := &dumper{buf: s.out, order: s.order, opts: dump}

	results := 0
	for {
		record, ok := s.inputs.Next()
		if !ok {
			break
		}
		if err, ok := record.(error); ok {
			return Output{}, err
		}

		n, halted, err := s.run(p.code, record, d)
		results += n
		if err != nil {
			return Output{}, err
		}
		if halted {
			break
		}
	}

	return Output{Text: s.out.String(), Results: results}, nil
}

func (s *State) run(code *gojq.Code, record any, d *dumper) (int, bool, error) {
	results := 0
	iter := code.Run(record)
	for {
		v, ok := iter.Next()
		if !ok {
			return results, false, nil
		}

		if err, ok := v.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) {
				if halt.ExitCode() == 0 {
					return results, true, nil
				}
				return results, true, errors.Mark(haltError(halt), ErrEvaluate)
			}
			return results, false, errors.Mark(err, ErrEvaluate)
		}

		if err := d.result(v); err != nil {
			return results, false, errors.Mark(err, ErrEvaluate)
		}
		results++
	}
}

// haltError renders the value given to halt_error as a diagnostic.
func haltError(halt *gojq.HaltError) error {
	switch v := halt.Value().(type) {
	case nil:
		return fmt.Errorf("halted with exit code %d", halt.ExitCode())
	case string:
		return errors.New(strings.TrimSuffix(v, "\n"))
	default:
		var buf bytes.Buffer
		d := &dumper{buf: &buf, order: newKeyOrder()}
		if err := d.value(v, 0); err != nil {
			return err
		}
		return errors.New(buf.String())
	}
}
