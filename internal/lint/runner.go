package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Exit code conventions (POSIX-compatible). The command surface promises
// the linter's own exit code unmodified; these cover the cases where no
// linter exit code exists.
const (
	ExitSuccess  = 0
	ExitTimeout  = 124 // context cancelled/deadline (GNU timeout convention)
	ExitNotFound = 127 // linter binary not found or not spawnable
)

// RunOpts carries the process wiring for one invocation.
type RunOpts struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner spawns one linter process.
//
// Returns (exitCode, nil) for normal execution, even when the process
// fails. Returns (ExitNotFound, err) only for spawn errors where no process
// exit code exists.
type Runner interface {
	Run(ctx context.Context, argv []string, opts RunOpts) (int, error)
}

// Local runs the process on the local machine via os/exec.
type Local struct{}

// Run executes argv with stdio passed through untouched. Context
// cancellation kills the process and reports ExitTimeout.
func (Local) Run(ctx context.Context, argv []string, opts RunOpts) (int, error) {
	if len(argv) == 0 {
		return ExitNotFound, errors.New("empty command line")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ExitTimeout, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// -1 means killed by signal before exiting.
			if exitErr.ExitCode() == -1 {
				return ExitTimeout, nil
			}
			return exitErr.ExitCode(), nil
		}
		return ExitNotFound, fmt.Errorf("running %s: %w", argv[0], err)
	}
	return ExitSuccess, nil
}
