// cmd/ticfix/serve.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/tamzrod/tic-settings/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settings fixer over HTTP",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			return server.New(cfg, a.log).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides server.listen")
	return cmd
}
