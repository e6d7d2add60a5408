package cmd

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/shock"
)

func newIRRBBCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "irrbb",
		Short: "Interest rate risk in the banking book",
		Long: `Interest rate risk in the banking book.

Subcommands:
  pv01     - PV01 per tenor bucket
  eve      - ΔEVE under a parallel shock
  nii      - ΔNII under a parallel shock
  eba      - ΔEVE and ΔNII under the six EBA scenarios
  custom   - ΔEVE under a per-bucket curve
  summary  - worst-case ΔEVE and ΔNII over a set of shocks`,
	}
	cmd.AddCommand(
		newPV01Cmd(o),
		newEVECmd(o),
		newNIICmd(o),
		newEBACmd(o),
		newCustomCmd(o),
		newSummaryCmd(o),
	)
	return cmd
}

func newPV01Cmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pv01",
		Short: "PV01 per tenor bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.PV01Profile(ctx, f.ScenarioID)
			})
		},
	}
}

func newEVECmd(o *rootOptions) *cobra.Command {
	var bps string
	cmd := &cobra.Command{
		Use:   "eve",
		Short: "ΔEVE under a parallel shock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shockBps, err := shock.ParseBps(bps)
			if err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.EVESensitivity(ctx, f.ScenarioID, shockBps)
			})
		},
	}
	cmd.Flags().StringVar(&bps, "shock-bps", "200", "parallel shock in basis points")
	return cmd
}

func newNIICmd(o *rootOptions) *cobra.Command {
	var bps string
	cmd := &cobra.Command{
		Use:   "nii",
		Short: "ΔNII under a parallel shock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shockBps, err := shock.ParseBps(bps)
			if err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.NIISensitivity(ctx, f, shockBps)
			})
		},
	}
	cmd.Flags().StringVar(&bps, "shock-bps", "200", "parallel shock in basis points")
	return cmd
}

func newEBACmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eba",
		Short: "ΔEVE and ΔNII under the EBA scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				eve, err := e.EBAScenariosEVE(ctx, f.ScenarioID)
				if err != nil {
					return nil, err
				}
				nii, err := e.EBAScenariosNII(ctx, f.ScenarioID)
				if err != nil {
					return nil, err
				}
				return map[string]any{"eve": eve, "nii": nii}, nil
			})
		},
	}
}

func newCustomCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "custom <bucket=bps,...>",
		Short:   "ΔEVE under a per-bucket curve",
		Example: `  baselctl irrbb custom "0-1y=200,1-3y=150,3-5y=100,5-10y=50,10y+=0"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := shock.ParseCurve(args[0])
			if err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.CustomShock(ctx, f.ScenarioID, curve)
			})
		},
	}
}

func newSummaryCmd(o *rootOptions) *cobra.Command {
	var shocks string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Worst-case ΔEVE and ΔNII over a set of parallel shocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []decimal.Decimal
			if shocks != "" {
				var err error
				if list, err = shock.ParseList(shocks); err != nil {
					return err
				}
			}
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.RiskSummary(ctx, f.ScenarioID, list)
			})
		},
	}
	cmd.Flags().StringVar(&shocks, "shocks", "", "comma-separated shocks in bps (default 200,-200)")
	return cmd
}
