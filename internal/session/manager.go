package session

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gridmerge/internal/config"
	"gridmerge/internal/engine"
	"gridmerge/internal/game"
	"gridmerge/internal/shared"
)

type Manager struct {
	store Store
	cfg   config.Config
	hub   Broadcaster
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewManager(s Store, cfg config.Config, log logrus.FieldLogger) *Manager {
	return &Manager{store: s, cfg: cfg, log: log, now: time.Now}
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

// Create starts a game for the planned tile sequence. An empty strategy
// name uses the configured default.
func (m *Manager) Create(values []int, strategy string) (*Session, error) {
	if !validLength(values) {
		return nil, ErrWrongLength
	}
	if strategy == "" {
		strategy = m.cfg.Strategy
	}
	strat, err := game.StrategyByName(strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	id := uuid.NewString()
	ctrl, err := engine.New(values,
		engine.WithStrategy(strat),
		engine.WithLogger(m.log.WithField("session", id)),
	)
	if err != nil {
		return nil, err
	}

	if m.cfg.SessionTTL > 0 {
		if n := m.store.PruneBefore(m.now().Add(-m.cfg.SessionTTL)); n > 0 {
			m.log.WithField("count", n).Info("pruned expired sessions")
		}
	}

	s := &Session{ID: id, CreatedAt: m.now(), ctrl: ctrl}
	m.store.SaveSession(s)
	m.log.WithFields(logrus.Fields{"session": id, "strategy": strat.Name()}).Info("session created")
	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	return m.store.GetSession(id)
}

// Snapshot returns the public view of a session.
func (m *Manager) Snapshot(id string) (shared.Session, bool) {
	s, ok := m.store.GetSession(id)
	if !ok {
		return shared.Session{}, false
	}
	return s.Snapshot(), true
}

// Turn places the next tile of session id at slot and commits the chosen
// slide. Subscribers get a "turn" event, or "finished" on the sentinel.
func (m *Manager) Turn(id string, slot int) (shared.TurnResult, shared.Session, error) {
	s, ok := m.store.GetSession(id)
	if !ok {
		return shared.TurnResult{}, shared.Session{}, ErrNotFound
	}
	var publish func(shared.TurnResult, shared.Session)
	if m.hub != nil {
		publish = func(res shared.TurnResult, snap shared.Session) {
			action := "turn"
			if res.Done {
				action = "finished"
			}
			m.hub.Broadcast(id, action, gin.H{"result": res, "session": snap})
		}
	}
	res, snap, err := s.turn(slot, publish)
	if err != nil {
		return shared.TurnResult{}, shared.Session{}, err
	}
	return res, snap, nil
}
