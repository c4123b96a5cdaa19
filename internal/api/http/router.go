package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gridmerge/internal/api/ws"
	"gridmerge/internal/config"
	"gridmerge/internal/session"
)

// SetupRouter wires the session, results and config endpoints. results may
// be nil when no database is configured.
func SetupRouter(m *session.Manager, hub *ws.Hub, results ResultLister, cfg config.Config, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	// WebSocket for live session updates
	r.GET("/ws", hub.HandleWS)

	api := r.Group("/api")

	// --- SESSION ENDPOINTS ---
	api.POST("/sessions", CreateSessionHandler(m))
	api.GET("/sessions/:id", GetSessionHandler(m))
	api.POST("/sessions/:id/turns", TurnHandler(m))

	// --- RESULTS ENDPOINTS ---
	api.GET("/results", ResultsHandler(results))

	// --- CONFIG ENDPOINTS ---
	api.GET("/config", GetConfigHandler(cfg))

	return r
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}
