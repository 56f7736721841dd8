// cmd/ticfix/fix.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/tamzrod/tic-settings/internal/batch"
	"github.com/tamzrod/tic-settings/internal/config"
	"github.com/tamzrod/tic-settings/internal/status"
	"github.com/tamzrod/tic-settings/internal/variant"
	"github.com/tamzrod/tic-settings/internal/writer"
)

func newFixCmd(a *app) *cobra.Command {
	var firmware string

	cmd := &cobra.Command{
		Use:   "fix IN OUT",
		Short: "Read settings from a file and fix them",
		Long: `Read settings from IN, fix them and write the result to OUT.
Use - for standard input or standard output. Each fix is reported on
standard error as a "Warning:" line.`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			fw, err := variant.ParseFirmwareVersion(firmware)
			if err != nil {
				return &status.BadArgsError{Err: err}
			}

			in, out := args[0], args[1]

			r, err := batch.Build(config.BatchConfig{Workers: 1}, []string{in}, fw, a.stdin, a.log)
			if err != nil {
				return err
			}
			res := r.FixOnce(in)

			w := writer.New(writer.FilePlan(out), a.stdout, a.stderr, writer.OSFiles{})
			if err := w.Write(res); err != nil {
				return err
			}
			if res.Err != nil {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&firmware, "firmware-version", "",
		"firmware version of the target device, e.g. 1.04 or 0x0104")
	return cmd
}
