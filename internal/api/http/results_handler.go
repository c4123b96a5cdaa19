package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gridmerge/internal/store"
)

type ResultLister interface {
	Runs(ctx context.Context, solver string) ([]store.Run, error)
	Totals(ctx context.Context) ([]store.SolverTotal, error)
}

// ResultsHandler lists stored benchmark runs, optionally for one solver.
func ResultsHandler(results ResultLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		if results == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "results database not configured"})
			return
		}
		runs, err := results.Runs(c.Request.Context(), c.Query("solver"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		totals, err := results.Totals(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if runs == nil {
			runs = []store.Run{}
		}
		c.JSON(http.StatusOK, gin.H{"runs": runs, "totals": totals})
	}
}
