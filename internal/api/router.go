package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"snapsentinel/internal/config"
)

// NewRouter wires the serving surface: health, auth, and the session-gated
// feed routes.
func NewRouter(logger *logrus.Logger, cfg config.Config, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group(cfg.API.BasePath)
	{
		api.POST("/auth/sign-in", h.SignIn)
		api.POST("/auth/sign-out", h.SignOut)

		gated := api.Group("", SessionMiddleware(h.sessions))
		{
			gated.GET("/alerts", h.GetAlerts)
			gated.POST("/refresh", h.Refresh)
			gated.GET("/ws", h.Stream)
		}
	}
	return r
}
