package session

import (
	"errors"
	"sync"
	"time"

	"gridmerge/internal/engine"
	"gridmerge/internal/game"
	"gridmerge/internal/shared"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrWrongLength     = errors.New("values must hold exactly 100 tiles")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

type Session struct {
	ID        string
	CreatedAt time.Time

	mu   sync.Mutex
	ctrl *engine.Controller
}

type Store interface {
	GetSession(id string) (*Session, bool)
	SaveSession(s *Session)
	PruneBefore(t time.Time) int
}

type Broadcaster interface {
	Broadcast(sessionID string, action string, data interface{})
}

func (s *Session) Snapshot() shared.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() shared.Session {
	b := s.ctrl.Board()
	return shared.Session{
		ID:        s.ID,
		Strategy:  s.ctrl.Strategy(),
		Turn:      s.ctrl.TurnIndex(),
		State:     s.ctrl.State().String(),
		NextValue: s.ctrl.NextValue(),
		ValueSum:  s.ctrl.ValueSum(),
		Score:     b.Score(s.ctrl.ValueSum()),
		Board:     b,
		CreatedAt: s.CreatedAt,
	}
}

// turn handles one placement. publish, if set, runs before the session is
// unlocked, so events for one session leave in turn order.
func (s *Session) turn(slot int, publish func(shared.TurnResult, shared.Session)) (shared.TurnResult, shared.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.ctrl.Turn(slot)
	if err != nil {
		return shared.TurnResult{}, shared.Session{}, err
	}
	out := shared.TurnResult{Turn: res.Turn, Placed: res.Placed, Done: res.Done}
	if !res.Done {
		out.Direction = res.Decision.Direction.String()
		out.Scores = res.Decision.Scores.Map()
	}
	snap := s.snapshotLocked()
	if publish != nil {
		publish(out, snap)
	}
	return out, snap, nil
}

func validLength(values []int) bool {
	return len(values) == game.NumCells
}
