package main

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gridmerge/internal/engine"
	"gridmerge/internal/game"
	"gridmerge/internal/gen"
	"gridmerge/internal/store"
)

// runSeed plays the generated input for seed and scores the final board the
// way the judge does.
func runSeed(strategy game.Strategy, seed int64) (store.Run, error) {
	in := gen.Generate(seed)
	g, err := engine.Play(in.Values, in.Slots, engine.WithStrategy(strategy))
	if err != nil {
		return store.Run{}, err
	}

	var out strings.Builder
	for _, d := range g.Directions {
		out.WriteString(d.String())
		out.WriteByte('\n')
	}
	return store.Run{
		ID:             uuid.NewString(),
		Solver:         strategy.Name(),
		Seed:           seed,
		Score:          g.Board.ExactScore(g.ValueSum),
		HeuristicScore: g.Board.Score(g.ValueSum),
		Output:         out.String(),
		CreatedAt:      time.Now(),
	}, nil
}

// runSeeds plays every seed on at most workers goroutines. Runs come back in
// the order of seeds.
func runSeeds(ctx context.Context, strategy game.Strategy, seeds []int64, workers int) ([]store.Run, error) {
	runs := make([]store.Run, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run, err := runSeed(strategy, seed)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func seedRange(seed int64) []int64 {
	if seed != 0 {
		return []int64{seed}
	}
	seeds := make([]int64, 100)
	for i := range seeds {
		seeds[i] = int64(i + 1)
	}
	return seeds
}
