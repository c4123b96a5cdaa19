package game

import "fmt"

// Scores holds one score per Direction.
type Scores [4]int

// Decision is a strategy's pick together with the score of every candidate.
type Decision struct {
	Direction Direction
	Scores    Scores
}

type Strategy interface {
	Name() string
	Choose(b Board, valueSum int) Decision
}

// Evaluate slides a copy of b in each direction and scores it.
func Evaluate(b Board, valueSum int) Scores {
	var scores Scores
	for _, d := range Directions {
		trial := b
		trial.Apply(d)
		scores[d] = trial.Score(valueSum)
	}
	return scores
}

// Best returns the first direction whose score is strictly greater than
// everything before it, starting from 0. If nothing beats 0 it is Forward.
func Best(scores Scores) (Direction, int) {
	best, bestScore := Forward, 0
	for _, d := range Directions {
		if scores[d] > bestScore {
			best = d
			bestScore = scores[d]
		}
	}
	return best, bestScore
}

// Greedy looks one slide ahead and keeps the best-scoring board.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Choose(b Board, valueSum int) Decision {
	scores := Evaluate(b, valueSum)
	d, _ := Best(scores)
	return Decision{Direction: d, Scores: scores}
}

// Constant always slides Forward. It is the benchmark baseline.
type Constant struct{}

func (Constant) Name() string { return "constant" }

func (Constant) Choose(Board, int) Decision {
	return Decision{Direction: Forward}
}

func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", "greedy":
		return Greedy{}, nil
	case "constant":
		return Constant{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// Map keys the scores by direction letter.
func (s Scores) Map() map[string]int {
	m := make(map[string]int, len(s))
	for _, d := range Directions {
		m[d.String()] = s[d]
	}
	return m
}
