// Package engine drives a board through a game, one placement per turn.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"gridmerge/internal/game"
)

type State int

const (
	AwaitPlacement State = iota
	Evaluating
	Committing
	Terminal
)

func (s State) String() string {
	switch s {
	case AwaitPlacement:
		return "await_placement"
	case Evaluating:
		return "evaluate"
	case Committing:
		return "commit"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrTerminal = errors.New("game already finished")
	ErrNoValues = errors.New("no tile values")
)

type Option func(*Controller)

// WithLogger sets the sink for per-turn debug traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

func WithStrategy(s game.Strategy) Option {
	return func(c *Controller) { c.strategy = s }
}

// TurnResult describes one handled placement. When Done is set the turn was
// the closing sentinel and nothing was placed.
type TurnResult struct {
	Turn     int
	Placed   int
	Decision game.Decision
	Done     bool
}

// Controller owns the live board. It is not safe for concurrent use.
type Controller struct {
	board    game.Board
	values   []int
	valueSum int
	turn     int
	state    State
	strategy game.Strategy
	log      logrus.FieldLogger
}

// New prepares a controller for the planned tile sequence. The last entry of
// values belongs to the sentinel turn and is never placed, but it still
// counts toward the value sum.
func New(values []int, opts ...Option) (*Controller, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	valueSum, err := game.ValueSum(values)
	if err != nil {
		return nil, err
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Controller{
		values:   append([]int(nil), values...),
		valueSum: valueSum,
		strategy: game.Greedy{},
		log:      quiet,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Turn places the current tile at the slot-th empty cell, picks a direction
// and commits it. A placement error leaves the controller unchanged.
func (c *Controller) Turn(slot int) (TurnResult, error) {
	if c.state == Terminal {
		return TurnResult{}, ErrTerminal
	}
	if c.turn == len(c.values)-1 {
		c.state = Terminal
		c.log.WithField("turn", c.turn).Debug("sentinel reached")
		return TurnResult{Turn: c.turn, Placed: -1, Done: true}, nil
	}

	c.state = Evaluating
	trial := c.board
	placed, err := trial.Place(c.values[c.turn], slot)
	if err != nil {
		c.state = AwaitPlacement
		return TurnResult{}, fmt.Errorf("turn %d: %w", c.turn, err)
	}
	dec := c.strategy.Choose(trial, c.valueSum)

	c.state = Committing
	trial.Apply(dec.Direction)
	c.board = trial

	c.log.WithFields(logrus.Fields{
		"turn":   c.turn,
		"value":  c.values[c.turn],
		"slot":   slot,
		"cell":   placed,
		"scores": dec.Scores.Map(),
		"chose":  dec.Direction.String(),
	}).Debug("turn evaluated")

	res := TurnResult{Turn: c.turn, Placed: placed, Decision: dec}
	c.turn++
	c.state = AwaitPlacement
	return res, nil
}

// Board returns a copy of the live board.
func (c *Controller) Board() game.Board { return c.board }

func (c *Controller) State() State { return c.state }

// TurnIndex is the index of the next turn to be handled.
func (c *Controller) TurnIndex() int { return c.turn }

func (c *Controller) ValueSum() int { return c.valueSum }

func (c *Controller) Strategy() string { return c.strategy.Name() }

// NextValue returns the tile the next turn will place, or 0 once the
// sentinel turn is next.
func (c *Controller) NextValue() int {
	if c.state == Terminal || c.turn >= len(c.values)-1 {
		return 0
	}
	return c.values[c.turn]
}
