package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/model"
)

func newCapitalCmd(o *rootOptions) *cobra.Command {
	var (
		rwaShock string
		series   bool
	)
	cmd := &cobra.Command{
		Use:   "capital",
		Short: "CET1, Tier1 and Total Capital ratios",
		Long: `Capital ratios over total RWA.

Subcommands:
  rwa    - RWA by approach and asset class
  floor  - IRB RWA against the 72.5% output floor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shock, err := decimal.NewFromString(rwaShock)
			if err != nil {
				return fmt.Errorf("bad --rwa-shock: %w", err)
			}
			if shock.LessThanOrEqual(decimal.NewFromInt(-1)) {
				return fmt.Errorf("bad --rwa-shock: must be greater than -1")
			}
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				if series {
					return e.CapitalSeries(ctx, f)
				}
				return e.CapitalRatiosUnderShock(ctx, f, shock)
			})
		},
	}
	cmd.Flags().StringVar(&rwaShock, "rwa-shock", "0", "fractional RWA inflation, e.g. 0.25")
	cmd.Flags().BoolVar(&series, "series", false, "ratios per reporting date")

	cmd.AddCommand(newRWACmd(o), newFloorCmd(o))
	return cmd
}

func newRWACmd(o *rootOptions) *cobra.Command {
	var byApproach bool
	cmd := &cobra.Command{
		Use:   "rwa",
		Short: "RWA breakdown, largest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				if byApproach {
					return e.RWAByApproach(ctx, f)
				}
				return e.RWABreakdown(ctx, f)
			})
		},
	}
	cmd.Flags().BoolVar(&byApproach, "by-approach", false, "group by approach only")
	return cmd
}

func newFloorCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "floor",
		Short: "Output floor check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.OutputFloor(ctx, f)
			})
		},
	}
}
