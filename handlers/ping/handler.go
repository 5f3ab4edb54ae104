package ping

import (
	"context"
	"net/http"
	"time"

	"blog-app/utils"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type Handler struct {
	database Pinger
}

func New(database Pinger) *Handler {
	return &Handler{database: database}
}

// HandlePing answers health checks. The database being down turns the answer into a 503
// while the process itself keeps serving.
func (h *Handler) HandlePing(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.database != nil {
		if err := h.database(ctx); err != nil {
			utils.LogError(err, "Health check: database unreachable")
			c.JSON(http.StatusServiceUnavailable, utils.Response{
				Success: false,
				Error:   "database unreachable",
				Data:    gin.H{"message": "pong", "database": "down"},
			})
			return
		}
	}

	utils.SendSuccess(c, http.StatusOK, "Ping successful", gin.H{
		"message":  "pong",
		"database": "up",
	})
}
