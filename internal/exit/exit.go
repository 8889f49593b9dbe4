package exit

import (
	"fmt"
	"io"
)

// Exit codes, matching jq.
const (
	CodeSuccess    = 0
	CodeUsage      = 2
	CodeCompile    = 3
	CodeEvaluation = 5
)

// Stream selects where a result message is written.
type Stream uint8

const (
	Stdout Stream = iota
	Stderr
)

// Result holds the output stream, message and exit code for program termination.
type Result struct {
	Message  string
	ExitCode int
	Stream   Stream
}

// Print writes the message to stdout or stderr according to the result's stream.
func (r *Result) Print(stdout, stderr io.Writer) {
	w := stdout
	if r.Stream == Stderr {
		w = stderr
	}
	fmt.Fprint(w, r.Message)
}

// Success creates a result that writes to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Stream:   Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

// Error creates a result that writes to stderr with the given exit code.
func Error(code int, message string) *Result {
	return &Result{
		Stream:   Stderr,
		ExitCode: code,
		Message:  message,
	}
}

// Errorf creates a usage error result with a formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(CodeUsage, fmt.Sprintf(format, a...))
}
