package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/wordlebench/internal/adapters/baseline"
	"github.com/okian/wordlebench/internal/harness"
	"github.com/okian/wordlebench/internal/report"
)

func newCompareCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare CURRENT BASELINE",
		Short: "Compare two saved baselines",
		Long:  "Compare loads two saved records, given as strategy@tag, and tests whether CURRENT needs significantly fewer or more turns than BASELINE.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := baseline.ParseKey(args[0])
			if err != nil {
				return err
			}
			base, err := baseline.ParseKey(args[1])
			if err != nil {
				return err
			}

			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			h := harness.New(
				harness.WithBaselineStore(store),
				harness.WithSignificance(c.cfg.SignificanceThreshold),
				harness.WithMinSamples(c.cfg.MinSamples),
			)
			rec, err := h.LoadBaseline(ctx, current)
			if err != nil {
				return err
			}
			res, err := h.Compare(ctx, rec, base)
			if err != nil {
				return err
			}
			return report.WriteComparison(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().Float64("alpha", 0, "significance threshold")
	return cmd
}
