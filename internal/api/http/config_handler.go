package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gridmerge/internal/config"
	"gridmerge/internal/game"
)

// GetConfigHandler returns the active configuration and board constants.
func GetConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"config":     cfg,
			"board_size": game.Size,
			"max_value":  game.MaxValue,
			"strategies": []string{game.Greedy{}.Name(), game.Constant{}.Name()},
		})
	}
}
