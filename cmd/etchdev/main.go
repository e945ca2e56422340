// etchdev is the dev-task runner for the etch tree: three fixed targets
// that invoke the linter and hand its exit code straight back.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/etch/internal/config"
	"github.com/aledsdavies/etch/internal/lint"
)

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	root := newRootCmd(lint.Local{})
	if err := root.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd(runner lint.Runner) *cobra.Command {
	var (
		configPath string
		dryRun     bool
		timeout    time.Duration
		noColor    bool
	)

	root := &cobra.Command{
		Use:           "etchdev",
		Short:         "Run etch development tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to the etch config file")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the command line without running it")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Kill the linter after this duration (0 means no limit)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	for _, target := range lint.Targets() {
		target := target
		root.AddCommand(&cobra.Command{
			Use:   target.Name,
			Short: target.Summary,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTarget(cmd, runner, target, configPath, dryRun, timeout, cmd.Flags().Changed("timeout"))
			},
		})
	}

	return root
}

func runTarget(cmd *cobra.Command, runner lint.Runner, target lint.Target, configPath string, dryRun bool, timeout time.Duration, timeoutSet bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	argv := target.Argv(cfg.Lint)

	if dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "$ %s\n", strings.Join(argv, " "))
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// An explicit --timeout 0 disables a config-file timeout; the config
	// value only applies when the flag was not given at all.
	if !timeoutSet {
		timeout = cfg.Lint.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	code, err := runner.Run(ctx, argv, lint.RunOpts{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.RedString("Error:"), err)
		return &exitError{code: code}
	}

	switch code {
	case lint.ExitSuccess:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s passed\n", color.GreenString("ok"), target.Name)
		return nil
	case lint.ExitTimeout:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s timed out after %s\n", color.RedString("FAIL"), target.Name, timeout)
		return &exitError{code: code}
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s exited with code %d\n", color.RedString("FAIL"), target.Name, code)
		return &exitError{code: code}
	}
}
