// cmd/ticfix/root.go
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tamzrod/tic-settings/internal/config"
	"github.com/tamzrod/tic-settings/internal/logging"
	"github.com/tamzrod/tic-settings/internal/status"
)

// errReported is returned when the failure was already printed.
var errReported = errors.New("failure already reported")

// app is the state shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfgPath  string
	logLevel string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ticfix",
		Short: "Check and fix Pololu Tic settings files",
		Long: `ticfix reads Tic stepper motor controller settings files, reports the
problems it finds and writes corrected files.

Examples:
  ticfix fix settings.txt fixed.txt
  ticfix fix - - < settings.txt
  ticfix defaults T825
  ticfix check --output inplace *.txt
  ticfix serve --config ticfix.yaml`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			return a.init(cmd)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &status.BadArgsError{Err: err}
	})

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "tool config file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newFixCmd(a),
		newDefaultsCmd(a),
		newCheckCmd(a),
		newServeCmd(a),
	)
	return root
}

// init loads the tool config and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return &status.BadArgsError{Err: fmt.Errorf("config: %w", err)}
	}
	config.Normalize(cfg)

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &status.BadArgsError{Err: err}
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return &status.BadArgsError{Err: err}
		}
		return nil
	}
}
