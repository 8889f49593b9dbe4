package engine

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrCompile marks errors raised while parsing or compiling a program.
	ErrCompile = errors.New("engine: compile failed")

	// ErrEvaluate marks errors raised while reading input or running a program.
	ErrEvaluate = errors.New("engine: evaluation failed")

	// ErrPalette marks colour palettes the engine does not accept.
	ErrPalette = errors.New("engine: invalid palette")

	// ErrClosed is returned when a released handle is used.
	ErrClosed = errors.New("engine: handle already released")
)
