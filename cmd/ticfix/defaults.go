// cmd/ticfix/defaults.go
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tamzrod/tic-settings/internal/settings"
	"github.com/tamzrod/tic-settings/internal/status"
	"github.com/tamzrod/tic-settings/internal/variant"
)

func newDefaultsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults PRODUCT",
		Short: "Print the default settings for a product",
		Long: `Print the default settings file for PRODUCT, one of
T825, T834, T500, N825, T249 or 36v4.`,
		Args: exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, ok := variant.ByName(args[0])
			if !ok {
				return &status.BadArgsError{Err: errors.New("Unrecognized product name.")}
			}

			text, err := settings.Encode(settings.Defaults(v.Product))
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(text)
			return err
		},
	}
}
