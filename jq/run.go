package jq

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jacoelho/jqrun/internal/engine"
	"github.com/jacoelho/jqrun/internal/metrics"
)

var defaultRunner = NewRunner()

// Run applies program to input under opts and returns the formatted output.
// Every result is followed by a newline. Errors are of type *Error.
//
// Run opens a fresh engine context for each call and releases it before
// returning, so concurrent calls share no engine state.
func Run(program, input string, opts Options) (string, error) {
	return defaultRunner.Run(program, input, opts)
}

// Validate reports the configuration error Run would return for opts, if any.
// The engine is not invoked.
func Validate(opts Options) error {
	_, err := translate(opts)
	return err
}

// Compile reports whether program compiles, without reading any input.
func Compile(program string) error {
	state := engine.New()
	defer state.Close()

	prog, err := state.Compile(program)
	if err != nil {
		return newError(KindCompile, err)
	}
	return prog.Close()
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for per-invocation debug entries.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics registers invocation metrics with reg.
func WithMetrics(reg prometheus.Registerer) RunnerOption {
	return func(r *Runner) {
		if reg != nil {
			r.metrics = metrics.New(reg)
		}
	}
}

// Runner executes filter programs. It holds only a logger and metrics, never
// engine state, and is safe for concurrent use.
type Runner struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewRunner creates a Runner. Without options it logs nothing and records no
// metrics.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run has the same contract as the package-level Run.
func (r *Runner) Run(program, input string, opts Options) (string, error) {
	start := time.Now()
	logger := r.logger.With(zap.String("invocation_id", uuid.NewString()))

	n, err := translate(opts)
	if err != nil {
		return "", r.fail(logger, start, err)
	}

	logger.Debug("invoking filter",
		zap.Int("program_bytes", len(program)),
		zap.Int("input_bytes", len(input)),
		zap.Stringer("options", opts),
		zap.Stringer("parse_flags", n.parse),
		zap.Stringer("dump_flags", n.dump.Flags),
	)

	out, err := execute(program, input, n)
	if err != nil {
		return "", r.fail(logger, start, err)
	}

	elapsed := time.Since(start)
	r.metrics.Observe(metrics.OutcomeSuccess, elapsed, out.Results)
	logger.Debug("filter finished",
		zap.Int("results", out.Results),
		zap.Int("output_bytes", len(out.Text)),
		zap.Duration("elapsed", elapsed),
	)
	return out.Text, nil
}

func (r *Runner) fail(logger *zap.Logger, start time.Time, err error) error {
	elapsed := time.Since(start)
	kind, _ := KindOf(err)
	r.metrics.Observe(outcome(kind), elapsed, 0)
	logger.Debug("filter failed",
		zap.Stringer("kind", kind),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	return err
}

func outcome(kind Kind) string {
	switch kind {
	case KindConfiguration:
		return metrics.OutcomeConfiguration
	case KindCompile:
		return metrics.OutcomeCompile
	case KindEvaluation:
		return metrics.OutcomeEvaluation
	default:
		return metrics.OutcomeUnknown
	}
}

// execute drives exactly one engine invocation. The context and the compiled
// program are released on every return path.
func execute(program, input string, n native) (engine.Output, error) {
	state := engine.New()
	defer state.Close()

	prog, err := state.Compile(program)
	if err != nil {
		return engine.Output{}, newError(KindCompile, err)
	}
	defer prog.Close()

	out, err := state.Evaluate(prog, input, n.parse, n.dump)
	if err != nil {
		return engine.Output{}, newError(KindEvaluation, err)
	}
	return out, nil
}
