package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func Health(store pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := store.Ping(ctx); err != nil {
			dbStatus = "unavailable"
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"status":    "ok",
			"database":  dbStatus,
			"timestamp": nowStamp(),
		})
	}
}
