// Command gridmerge answers the judge over stdin/stdout: it reads the
// planned tile values, then for each turn reads a slot and prints the slide
// direction it committed to.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"gridmerge/internal/config"
	"gridmerge/internal/engine"
	"gridmerge/internal/game"
)

func main() {
	cfg := config.Load()
	log := cfg.NewLogger(os.Stderr)
	if !cfg.Debug {
		log.SetLevel(logrus.WarnLevel)
	}

	strategy, err := game.StrategyByName(cfg.Strategy)
	if err != nil {
		log.WithError(err).Fatal("invalid strategy")
	}

	if err := engine.Serve(os.Stdin, os.Stdout,
		engine.WithStrategy(strategy),
		engine.WithLogger(log),
	); err != nil {
		log.WithError(err).Fatal("solver stopped")
	}
}
