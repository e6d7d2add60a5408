package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/model"
)

func newLCRCmd(o *rootOptions) *cobra.Command {
	var series bool
	cmd := &cobra.Command{
		Use:   "lcr",
		Short: "Liquidity Coverage Ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				if series {
					return e.LCRSeries(ctx, f)
				}
				return e.LCR(ctx, f)
			})
		},
	}
	cmd.Flags().BoolVar(&series, "series", false, "per-date series instead of the aggregate")
	return cmd
}

func newNSFRCmd(o *rootOptions) *cobra.Command {
	var series bool
	cmd := &cobra.Command{
		Use:   "nsfr",
		Short: "Net Stable Funding Ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				if series {
					return e.NSFRSeries(ctx, f)
				}
				return e.NSFR(ctx, f)
			})
		},
	}
	cmd.Flags().BoolVar(&series, "series", false, "per-date series instead of the aggregate")
	return cmd
}

func newHeatmapCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Cashflow gap per maturity bucket and date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.CashflowGapHeatmap(ctx, f)
			})
		},
	}
}
