package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jqrun/internal/config"
	"github.com/jacoelho/jqrun/internal/exit"
	"github.com/jacoelho/jqrun/internal/logging"
	"github.com/jacoelho/jqrun/jq"
)

func main() {
	os.Exit(run(os.Args, config.SystemEnvironment(), os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, env config.Environment, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, exitResult := config.Parse(args, env)
	if exitResult != nil {
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	logger := logging.New(cfg.Debug, stderr)
	defer func() { _ = logger.Sync() }()

	input, err := cfg.ReadInput(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "jqrun: error: %v\n", err)
		return exit.CodeUsage
	}

	output, err := jq.NewRunner(jq.WithLogger(logger)).Run(cfg.Program, input, cfg.Options)
	if err != nil {
		var jqErr *jq.Error
		if errors.As(err, &jqErr) {
			fmt.Fprintf(stderr, "jqrun: error: %s\n", jqErr.Diagnostic)
		} else {
			fmt.Fprintf(stderr, "jqrun: error: %v\n", err)
		}
		return exitCode(err)
	}

	// The output already ends with a newline per result
	fmt.Fprint(stdout, output)
	return exit.CodeSuccess
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, jq.ErrCompile):
		return exit.CodeCompile
	case errors.Is(err, jq.ErrEvaluation):
		return exit.CodeEvaluation
	default:
		return exit.CodeUsage
	}
}
