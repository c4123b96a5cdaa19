package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	httpapi "gridmerge/internal/api/http"
	"gridmerge/internal/api/ws"
	"gridmerge/internal/config"
	"gridmerge/internal/session"
	"gridmerge/internal/store"
)

func main() {
	cfg := config.Load()
	log := cfg.NewLogger(os.Stderr)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	mem := store.NewMemoryStore()
	sm := session.NewManager(mem, cfg, log)
	hub := ws.NewHub(sm, log)
	sm.SetHub(hub)

	var results httpapi.ResultLister
	if rs, err := store.OpenResults(cfg.DBPath); err != nil {
		log.WithError(err).Warn("results database unavailable, /api/results disabled")
	} else {
		defer rs.Close()
		results = rs
	}

	r := httpapi.SetupRouter(sm, hub, results, cfg, log)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/api/config")
	})

	log.Infof("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
