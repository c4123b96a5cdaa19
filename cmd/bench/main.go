// Command bench plays generated inputs with a strategy, prints per-seed
// scores and keeps them in SQLite for comparison across solvers.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"gridmerge/internal/config"
	"gridmerge/internal/game"
	"gridmerge/internal/store"
)

func main() {
	cfg := config.Load()
	log := cfg.NewLogger(os.Stderr)

	if err := newApp(cfg, log).Run(os.Args); err != nil {
		log.WithError(err).Fatal("bench failed")
	}
}

func newApp(cfg config.Config, log logrus.FieldLogger) *cli.App {
	return &cli.App{
		Name:  "bench",
		Usage: "score a strategy over generated seeds",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "solver", Value: cfg.Strategy, Usage: "strategy to run (greedy, constant)"},
			&cli.Int64Flag{Name: "seed", Usage: "single seed to run (0 runs seeds 1-100)"},
			&cli.StringFlag{Name: "db", Value: cfg.DBPath, Usage: "SQLite database for results (empty to skip)"},
			&cli.IntFlag{Name: "workers", Value: cfg.BenchWorkers, Usage: "parallel games"},
		},
		Action: func(c *cli.Context) error {
			return bench(c.Context, c.App.Writer, log, c.String("solver"), c.Int64("seed"), c.String("db"), c.Int("workers"))
		},
		Commands: []*cli.Command{
			{
				Name:  "report",
				Usage: "print stored totals per solver",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "SQLite database to read (defaults to the app-level --db)"},
				},
				Action: func(c *cli.Context) error {
					rs, err := store.OpenResults(dbPath(c))
					if err != nil {
						return err
					}
					defer rs.Close()
					return printReport(c.Context, c.App.Writer, rs)
				},
			},
		},
	}
}

// dbPath returns the nearest non-empty --db, so the flag works on either
// side of the subcommand name.
func dbPath(c *cli.Context) string {
	for _, ctx := range c.Lineage() {
		if p := ctx.String("db"); p != "" {
			return p
		}
	}
	return ""
}

func bench(ctx context.Context, w io.Writer, log logrus.FieldLogger, solver string, seed int64, dbPath string, workers int) error {
	strategy, err := game.StrategyByName(solver)
	if err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	var rs *store.ResultStore
	if dbPath != "" {
		rs, err = store.OpenResults(dbPath)
		if err != nil {
			return err
		}
		defer rs.Close()
	}

	seeds := seedRange(seed)
	log.WithFields(logrus.Fields{"solver": strategy.Name(), "seeds": len(seeds), "workers": workers}).Info("running")

	runs, err := runSeeds(ctx, strategy, seeds, workers)
	if err != nil {
		return err
	}

	var total int64
	for _, r := range runs {
		fmt.Fprintf(w, "%d: %s\n", r.Seed, humanize.Comma(int64(r.Score)))
		total += int64(r.Score)
		if rs != nil {
			if err := rs.SaveRun(ctx, r); err != nil {
				log.WithError(err).Warn("failed to store run")
			}
		}
	}
	if len(runs) > 0 {
		fmt.Fprintf(w, "Total score: %s\n", humanize.Comma(total))
	}
	return nil
}

func printReport(ctx context.Context, w io.Writer, rs *store.ResultStore) error {
	totals, err := rs.Totals(ctx)
	if err != nil {
		return err
	}
	for _, t := range totals {
		fmt.Fprintf(w, "%-10s runs=%-4d total=%s best=%s worst=%s\n",
			t.Solver, t.Runs, humanize.Comma(t.Total),
			humanize.Comma(int64(t.Best)), humanize.Comma(int64(t.Worst)))
	}
	return nil
}
