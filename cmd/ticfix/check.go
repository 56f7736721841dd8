// cmd/ticfix/check.go
package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/tic-settings/internal/batch"
	"github.com/tamzrod/tic-settings/internal/config"
	"github.com/tamzrod/tic-settings/internal/status"
	"github.com/tamzrod/tic-settings/internal/variant"
	"github.com/tamzrod/tic-settings/internal/writer"
)

type checkFlags struct {
	firmware string
	output   string
	dir      string
	workers  int
	json     bool
}

func newCheckCmd(a *app) *cobra.Command {
	var f checkFlags

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check many settings files and summarize the problems found",
		Long: `Check every FILE in parallel and print one line per file plus a summary.
With --output inplace or --output dir the fixed files are written too.
The exit code is 2 when any file could not be read.`,
		Args: minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, args, f)
		},
	}

	cmd.Flags().StringVar(&f.firmware, "firmware-version", "", "firmware version applied to every file")
	cmd.Flags().StringVar(&f.output, "output", "", "where fixed files go: none, stdout, inplace or dir")
	cmd.Flags().StringVar(&f.dir, "dir", "", "destination directory for --output dir")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "files processed at once (default one per CPU)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the report as JSON")
	return cmd
}

func (a *app) check(cmd *cobra.Command, paths []string, f checkFlags) error {
	fw, err := variant.ParseFirmwareVersion(f.firmware)
	if err != nil {
		return &status.BadArgsError{Err: err}
	}

	// --------------------
	// Batch config: file/env values overridden by flags
	// --------------------

	cfg := *a.cfg
	if cmd.Flags().Changed("output") {
		cfg.Batch.Output = f.output
	}
	if cmd.Flags().Changed("dir") {
		cfg.Batch.Dir = f.dir
	}
	if cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if err := config.Validate(&cfg); err != nil {
		return &status.BadArgsError{Err: err}
	}
	config.Normalize(&cfg)

	plan, err := writer.BuildPlan(cfg.Batch, paths)
	if err != nil {
		return &status.BadArgsError{Err: err}
	}

	r, err := batch.Build(cfg.Batch, paths, fw, a.stdin, a.log)
	if err != nil {
		return err
	}

	// settings text owns stdout in stdout mode
	var reportOut io.Writer = a.stdout
	if plan.Mode == config.OutputStdout {
		reportOut = a.stderr
	}

	// --------------------
	// Runner + writer
	// --------------------

	w := writer.New(plan, a.stdout, a.stderr, writer.OSFiles{})
	reports := make([]status.Report, len(paths))
	out := make(chan batch.Result)

	g, gctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		defer close(out)
		return r.Run(gctx, out)
	})

	g.Go(func() error {
		for res := range out {
			if err := w.Write(res); err != nil {
				a.log.Warn("write failed", zap.String("path", res.Path), zap.Error(err))
				res.Err = err
			}
			reports[res.Index] = status.NewReport(res.Path, res.Fixed, res.Err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// --------------------
	// Report
	// --------------------

	if err := writer.NewReportWriter(reportOut, f.json).WriteReports(reports); err != nil {
		return err
	}
	if status.Encode(reports).ExitCode() != status.ExitOK {
		return errReported
	}
	return nil
}
