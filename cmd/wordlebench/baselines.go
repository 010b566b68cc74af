package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBaselinesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "baselines",
		Short: "List saved baselines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			keys, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k.String())
			}
			return nil
		},
	}
}
