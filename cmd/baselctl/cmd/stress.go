package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/shock"
	"github.com/baselworks/risk-engine/internal/stress"
)

func newStressCmd(o *rootOptions) *cobra.Command {
	def := stress.DefaultInput()
	var shockBps, retail, wholesale, rwaStress string

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Base versus stressed LCR, NSFR and capital ratios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := stress.DefaultInput()
			var err error
			if in.ShockBps, err = shock.ParseBps(shockBps); err != nil {
				return err
			}
			for _, f := range []struct {
				flag string
				raw  string
				dst  *decimal.Decimal
			}{
				{"retail", retail, &in.RetailWithdrawal},
				{"wholesale", wholesale, &in.WholesaleWithdrawal},
				{"rwa-stress", rwaStress, &in.RWAStress},
			} {
				if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
					return fmt.Errorf("bad --%s: %w", f.flag, err)
				}
			}
			if in.ScenarioID, err = o.scenarioID(); err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, _ model.Filter) (any, error) {
				return e.RunStressTest(ctx, in)
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&shockBps, "shock-bps", def.ShockBps.String(), "parallel rate shock in basis points")
	fl.StringVar(&retail, "retail", def.RetailWithdrawal.String(), "retail withdrawal fraction")
	fl.StringVar(&wholesale, "wholesale", def.WholesaleWithdrawal.String(), "wholesale withdrawal fraction")
	fl.StringVar(&rwaStress, "rwa-stress", def.RWAStress.String(), "fractional RWA inflation")
	return cmd
}
