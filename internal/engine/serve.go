package engine

import (
	"fmt"
	"io"

	"gridmerge/internal/game"
	"gridmerge/internal/protocol"
)

// Serve plays one game against a judge: it reads the planned values, then
// alternates between reading a slot and writing the chosen direction.
// Output for a turn is written only after that turn succeeded.
func Serve(in io.Reader, out io.Writer, opts ...Option) error {
	r := protocol.NewReader(in)
	values, err := r.ReadValues(game.NumCells)
	if err != nil {
		return err
	}
	c, err := New(values, opts...)
	if err != nil {
		return err
	}

	w := protocol.NewWriter(out)
	for {
		slot, err := r.NextInt()
		if err != nil {
			return fmt.Errorf("slot for turn %d: %w", c.TurnIndex(), err)
		}
		res, err := c.Turn(slot)
		if err != nil {
			return err
		}
		if res.Done {
			return nil
		}
		if err := w.WriteDirection(res.Decision.Direction); err != nil {
			return fmt.Errorf("write turn %d: %w", res.Turn, err)
		}
	}
}

// Game is the outcome of a fully replayed input.
type Game struct {
	Directions []game.Direction
	Board      game.Board
	ValueSum   int
}

// Play runs a whole game from known values and slots, without a judge.
func Play(values, slots []int, opts ...Option) (Game, error) {
	if len(slots) != len(values) {
		return Game{}, fmt.Errorf("%d values but %d slots", len(values), len(slots))
	}
	c, err := New(values, opts...)
	if err != nil {
		return Game{}, err
	}

	g := Game{ValueSum: c.ValueSum()}
	for _, slot := range slots {
		res, err := c.Turn(slot)
		if err != nil {
			return Game{}, err
		}
		if res.Done {
			break
		}
		g.Directions = append(g.Directions, res.Decision.Direction)
	}
	g.Board = c.Board()
	return g, nil
}
