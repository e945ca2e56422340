// etch is a terminal text editor. It owns the tty in raw mode for its whole
// run, so diagnostics go to a log file and the terminal is restored on
// every exit path.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/etch/internal/config"
	"github.com/aledsdavies/etch/internal/editor"
	"github.com/aledsdavies/etch/internal/logging"
	"github.com/aledsdavies/etch/internal/terminal"
)

var version = "dev"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
		noColor    bool
	)

	root := &cobra.Command{
		Use:           "etch",
		Short:         "A terminal text editor",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configPath, debug)
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "Path to the etch config file")
	root.Flags().BoolVar(&debug, "debug", false, "Log key events and lifecycle to the log file")
	root.Flags().BoolVar(&noColor, "no-color", false, "Disable colored diagnostics output")

	return root
}

func run(cmd *cobra.Command, configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Debug: debug,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	term, err := terminal.Open()
	if err != nil {
		return err
	}
	// Raw mode must end before any error reaches the shell prompt.
	defer func() { _ = term.Restore() }()

	logger.Info().Str("version", version).Msg("editor starting")

	ed := editor.New(term, terminal.NewKeyReader(os.Stdin), logger)
	if err := ed.Run(cmd.Context()); err != nil {
		logger.Error().Err(err).Msg("editor loop failed")
		return err
	}

	logger.Info().Msg("editor exiting")
	return nil
}
