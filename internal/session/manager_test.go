package session_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"

	"gridmerge/internal/config"
	"gridmerge/internal/engine"
	"gridmerge/internal/game"
	"gridmerge/internal/session"
	"gridmerge/internal/shared"
	"gridmerge/internal/store"
)

type event struct {
	session string
	action  string
	turn    int
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Broadcast(sessionID string, action string, data interface{}) {
	turn := -1
	if h, ok := data.(gin.H); ok {
		if res, ok := h["result"].(shared.TurnResult); ok {
			turn = res.Turn
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{sessionID, action, turn})
}

func planned() []int {
	values := make([]int, game.NumCells)
	for i := range values {
		values[i] = 1 + i%3
	}
	return values
}

func newManager(cfg config.Config) (*session.Manager, *store.MemoryStore, *recorder) {
	logger, _ := test.NewNullLogger()
	mem := store.NewMemoryStore()
	m := session.NewManager(mem, cfg, logger)
	rec := &recorder{}
	m.SetHub(rec)
	return m, mem, rec
}

func TestCreateValidates(t *testing.T) {
	m, _, _ := newManager(config.Config{Strategy: "greedy"})

	if _, err := m.Create([]int{1, 2, 3}, ""); !errors.Is(err, session.ErrWrongLength) {
		t.Errorf("expected ErrWrongLength, got %v", err)
	}
	if _, err := m.Create(planned(), "minimax"); !errors.Is(err, session.ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
	bad := planned()
	bad[10] = 9
	if _, err := m.Create(bad, ""); !errors.Is(err, game.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}

	s, err := m.Create(planned(), "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	snap := s.Snapshot()
	if snap.Strategy != "greedy" || snap.Turn != 0 || snap.NextValue != 1 || snap.State != "await_placement" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestTurnMatchesPlay(t *testing.T) {
	m, _, rec := newManager(config.Config{Strategy: "greedy"})
	values := planned()
	slots := make([]int, game.NumCells)
	for i := range slots {
		slots[i] = 1 + (i*7)%(game.NumCells-i)
	}

	s, err := m.Create(values, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want, err := engine.Play(values, slots)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	for i, slot := range slots {
		res, snap, err := m.Turn(s.ID, slot)
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		if i == len(slots)-1 {
			if !res.Done || snap.State != "terminal" {
				t.Errorf("last turn: done=%v state=%s", res.Done, snap.State)
			}
			if snap.Board != want.Board {
				t.Error("final board differs from Play")
			}
			break
		}
		if res.Direction != want.Directions[i].String() {
			t.Fatalf("turn %d: direction %s, want %s", i, res.Direction, want.Directions[i])
		}
		if len(res.Scores) != 4 {
			t.Fatalf("turn %d: scores %v", i, res.Scores)
		}
	}

	if _, _, err := m.Turn(s.ID, 1); !errors.Is(err, engine.ErrTerminal) {
		t.Errorf("expected ErrTerminal, got %v", err)
	}
	if len(rec.events) != game.NumCells {
		t.Fatalf("got %d events, want %d", len(rec.events), game.NumCells)
	}
	if rec.events[0].action != "turn" || rec.events[len(rec.events)-1].action != "finished" {
		t.Errorf("unexpected events: first %v last %v", rec.events[0], rec.events[len(rec.events)-1])
	}
}

func TestConcurrentTurnsBroadcastInOrder(t *testing.T) {
	m, _, rec := newManager(config.Config{Strategy: "greedy"})
	s, err := m.Create(planned(), "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, _, err := m.Turn(s.ID, 1); err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	if len(rec.events) != game.NumCells {
		t.Fatalf("got %d events, want %d", len(rec.events), game.NumCells)
	}
	for i, ev := range rec.events {
		if ev.turn != i {
			t.Fatalf("event %d carries turn %d", i, ev.turn)
		}
	}
}

func TestTurnUnknownSession(t *testing.T) {
	m, _, _ := newManager(config.Config{})
	if _, _, err := m.Turn("missing", 1); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, ok := m.Snapshot("missing"); ok {
		t.Error("snapshot for missing session")
	}
}

func TestCreatePrunesExpired(t *testing.T) {
	m, mem, _ := newManager(config.Config{SessionTTL: time.Nanosecond})
	if _, err := m.Create(planned(), ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := m.Create(planned(), ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if mem.Len() != 1 {
		t.Errorf("store holds %d sessions, want 1", mem.Len())
	}
}
