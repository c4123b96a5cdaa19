package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub fans session events out to websocket subscribers. Clients may also
// drive a session over the same connection.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*client]struct{}
	manager  SessionManager
	log      logrus.FieldLogger
}

// client serializes writes to one connection. The hub lock is never held
// while writing.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (cl *client) write(v interface{}) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(v)
}

func NewHub(manager SessionManager, log logrus.FieldLogger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*client]struct{}),
		manager:  manager,
		log:      log,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type clientMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session_id"})
		return
	}
	snap, ok := h.manager.Snapshot(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	log := h.log.WithField("session", sessionID)
	log.Debug("websocket subscribed")

	cl := &client{conn: conn}
	h.subscribe(sessionID, cl)
	defer func() {
		h.unsubscribe(sessionID, cl)
		_ = conn.Close()
	}()

	h.send(cl, "state", gin.H{"session": snap})

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithError(err).Debug("websocket closed")
			return
		}

		switch msg.Action {
		case "turn":
			var req struct {
				Slot int `json:"slot"`
			}
			if err := json.Unmarshal(msg.Data, &req); err != nil {
				h.send(cl, "error", gin.H{"error": "invalid turn payload"})
				continue
			}
			// Success is reported through Broadcast by the manager.
			if _, _, err := h.manager.Turn(sessionID, req.Slot); err != nil {
				h.send(cl, "error", gin.H{"error": err.Error()})
			}
		case "state":
			if snap, ok := h.manager.Snapshot(sessionID); ok {
				h.send(cl, "state", gin.H{"session": snap})
			}
		default:
			h.send(cl, "error", gin.H{"error": "unknown action " + msg.Action})
		}
	}
}

func (h *Hub) subscribe(sessionID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[sessionID]; !ok {
		h.sessions[sessionID] = make(map[*client]struct{})
	}
	h.sessions[sessionID][cl] = struct{}{}
}

func (h *Hub) unsubscribe(sessionID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions[sessionID], cl)
	if len(h.sessions[sessionID]) == 0 {
		delete(h.sessions, sessionID)
	}
}

func (h *Hub) send(cl *client, action string, data interface{}) {
	if err := cl.write(gin.H{"action": action, "data": data}); err != nil {
		h.log.WithError(err).Warn("failed to send message")
	}
}

// Broadcast sends an event to every subscriber of sessionID. Connections
// that fail to receive it are dropped.
func (h *Hub) Broadcast(sessionID string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.sessions[sessionID]))
	for cl := range h.sessions[sessionID] {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	message := gin.H{
		"action": action,
		"data":   data,
	}
	for _, cl := range clients {
		if err := cl.write(message); err != nil {
			h.log.WithError(err).WithField("session", sessionID).Warn("failed to broadcast")
			h.unsubscribe(sessionID, cl)
			cl.conn.Close()
		}
	}
}

// Subscribers reports how many connections follow sessionID.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}
