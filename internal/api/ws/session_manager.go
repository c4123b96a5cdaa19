package ws

import "gridmerge/internal/shared"

type SessionManager interface {
	Snapshot(id string) (shared.Session, bool)
	Turn(id string, slot int) (shared.TurnResult, shared.Session, error)
}
