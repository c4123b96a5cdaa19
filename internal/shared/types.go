package shared

import (
	"time"

	"gridmerge/internal/game"
)

// Session is the public view of a server-side game.
type Session struct {
	ID        string     `json:"id"`
	Strategy  string     `json:"strategy"`
	Turn      int        `json:"turn"`
	State     string     `json:"state"`
	NextValue int        `json:"next_value"`
	ValueSum  int        `json:"value_sum"`
	Score     int        `json:"score"`
	Board     game.Board `json:"board"`
	CreatedAt time.Time  `json:"created_at"`
}

type TurnResult struct {
	Turn      int            `json:"turn"`
	Placed    int            `json:"placed"`
	Direction string         `json:"direction,omitempty"`
	Scores    map[string]int `json:"scores,omitempty"`
	Done      bool           `json:"done"`
}
