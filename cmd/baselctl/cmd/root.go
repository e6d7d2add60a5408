// Package cmd implements the baselctl command tree.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/baselworks/risk-engine/internal/config"
	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/store"
)

// rootOptions are the persistent flags shared by every subcommand. Unset
// source flags fall back to the server's environment configuration.
type rootOptions struct {
	fixture     string
	sqlite      string
	databaseURL string
	scenario    string
	start       string
	end         string
	verbose     bool
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "baselctl",
		Short: "Compute Basel III regulatory metrics from a data source",
		Long: `baselctl computes liquidity, capital and interest-rate-risk metrics
from a regulatory dataset and prints them as indented JSON.

Data sources, first match wins:
  --database-url  PostgreSQL (or DATABASE_URL)
  --sqlite        SQLite file (or SQLITE_PATH)
  --fixture       YAML fixture (or FIXTURE_PATH)

Examples:
  baselctl --fixture data.yaml lcr
  baselctl --sqlite risk.db --scenario 1 capital --rwa-shock 0.25
  baselctl --fixture data.yaml irrbb custom "0-1y=200,3-5y=-50"
  baselctl --sqlite risk.db import data.yaml`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.fixture, "fixture", "", "YAML fixture to load into memory")
	pf.StringVar(&o.sqlite, "sqlite", "", "SQLite database file")
	pf.StringVar(&o.databaseURL, "database-url", "", "PostgreSQL connection URL")
	pf.StringVar(&o.scenario, "scenario", "", "scenario ID (default: all records)")
	pf.StringVar(&o.start, "start", "", "first reporting date, YYYY-MM-DD")
	pf.StringVar(&o.end, "end", "", "last reporting date, YYYY-MM-DD")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(
		newLCRCmd(o),
		newNSFRCmd(o),
		newHeatmapCmd(o),
		newCapitalCmd(o),
		newIRRBBCmd(o),
		newStressCmd(o),
		newThresholdsCmd(o),
		newScenariosCmd(o),
		newParamsCmd(o),
		newImportCmd(o),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// engine opens the selected data source. The cleanup must be called when
// the command is done.
func (o *rootOptions) engine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	opts := store.Options{
		DatabaseURL: o.databaseURL,
		SQLitePath:  o.sqlite,
		FixturePath: o.fixture,
		Logger:      o.logger(cmd),
	}
	if opts.DatabaseURL == "" && opts.SQLitePath == "" && opts.FixturePath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		opts.DatabaseURL, opts.SQLitePath, opts.FixturePath = cfg.DatabaseURL, cfg.SQLitePath, cfg.FixturePath
		opts.RedisURL, opts.CacheTTL = cfg.RedisURL, cfg.CacheTTL
	}

	view, cleanup, err := store.Open(cmd.Context(), opts)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(view, opts.Logger), cleanup, nil
}

func (o *rootOptions) scenarioID() (*int64, error) {
	if o.scenario == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(o.scenario, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad --scenario %q: %w", o.scenario, err)
	}
	return &id, nil
}

func (o *rootOptions) filter() (model.Filter, error) {
	var f model.Filter
	var err error
	if f.ScenarioID, err = o.scenarioID(); err != nil {
		return f, err
	}
	if f.Start, err = parseDay("start", o.start); err != nil {
		return f, err
	}
	if f.End, err = parseDay("end", o.end); err != nil {
		return f, err
	}
	return f, nil
}

func parseDay(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("bad --%s: %w", flag, err)
	}
	return &t, nil
}

// run opens the engine, runs fn and prints its result.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, e *engine.Engine, f model.Filter) (any, error)) error {
	f, err := o.filter()
	if err != nil {
		return err
	}
	e, cleanup, err := o.engine(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := fn(cmd.Context(), e, f)
	if err != nil {
		return err
	}
	return printJSON(cmd, res)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
