package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/store"
)

func newThresholdsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "thresholds",
		Short: "Current metrics against the regulatory minimums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error) {
				return e.Thresholds(ctx, f)
			})
		},
	}
}

func newScenariosCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List stress scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, _ model.Filter) (any, error) {
				return e.Scenarios(ctx)
			})
		},
	}
}

func newParamsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Stored and effective regulatory parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *engine.Engine, _ model.Filter) (any, error) {
				return e.Parameters(ctx)
			})
		},
	}
}

// ImportSummary reports what an import wrote.
type ImportSummary struct {
	Database     string `json:"database"`
	Scenarios    int    `json:"scenarios"`
	Params       int    `json:"params"`
	Cashflows    int    `json:"cashflows"`
	RWA          int    `json:"rwa"`
	IRRBB        int    `json:"irrbb"`
	BalanceSheet int    `json:"balance_sheet"`
}

func newImportCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <fixture.yaml>",
		Short: "Load a YAML fixture into the database given by --sqlite or --database-url",
		Long: `Load a YAML fixture into a database. PostgreSQL tables are created
when missing; a SQLite file is created along with its directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := o.sqlite
			if o.databaseURL != "" {
				target = "postgres"
			}
			if target == "" {
				return fmt.Errorf("missing --sqlite or --database-url")
			}

			ds, err := store.LoadFixture(args[0])
			if err != nil {
				return err
			}
			logger := o.logger(cmd)
			view, cleanup, err := store.Open(cmd.Context(), store.Options{
				DatabaseURL: o.databaseURL,
				SQLitePath:  o.sqlite,
				Migrate:     true,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			defer cleanup()

			imp, ok := view.(store.Importer)
			if !ok {
				return fmt.Errorf("%s does not accept imports", target)
			}
			if err := imp.Import(cmd.Context(), ds); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			logger.Info("fixture imported", "fixture", args[0], "database", target)
			return printJSON(cmd, ImportSummary{
				Database:     target,
				Scenarios:    len(ds.Scenarios),
				Params:       len(ds.Params),
				Cashflows:    len(ds.Cashflows),
				RWA:          len(ds.RWA),
				IRRBB:        len(ds.IRRBB),
				BalanceSheet: len(ds.BalanceSheet),
			})
		},
	}
}
