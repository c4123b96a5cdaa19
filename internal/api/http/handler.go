package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gridmerge/internal/engine"
	"gridmerge/internal/game"
	"gridmerge/internal/session"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrTerminal):
		return http.StatusConflict
	case errors.Is(err, game.ErrSlotOutOfRange),
		errors.Is(err, game.ErrInvalidValue),
		errors.Is(err, session.ErrWrongLength),
		errors.Is(err, session.ErrUnknownStrategy):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// CreateSessionHandler starts a game from the full planned tile sequence.
func CreateSessionHandler(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "values required"})
			return
		}
		s, err := m.Create(req.Values, req.Strategy)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"session": s.Snapshot()})
	}
}

func GetSessionHandler(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := m.Snapshot(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": snap})
	}
}

// TurnHandler places the next tile at the requested slot and answers with
// the committed direction and every candidate score.
func TurnHandler(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TurnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot required"})
			return
		}
		res, snap, err := m.Turn(c.Param("id"), *req.Slot)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"direction": res.Direction,
			"scores":    res.Scores,
			"placed":    res.Placed,
			"done":      res.Done,
			"session":   snap,
		})
	}
}
