package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"snapsentinel/internal/auth"
	"snapsentinel/internal/eventbus"
	"snapsentinel/internal/feed"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	feed     *feed.Service
	bus      *eventbus.Bus
	sessions auth.SessionProvider
	hub      *Hub
	logger   *logrus.Logger
}

func NewHandler(feedSvc *feed.Service, bus *eventbus.Bus, sessions auth.SessionProvider, hub *Hub, logger *logrus.Logger) *Handler {
	return &Handler{feed: feedSvc, bus: bus, sessions: sessions, hub: hub, logger: logger}
}

// GetAlerts returns the current feed snapshot: alerts, loading flag, and the
// last fetch error if any.
func (h *Handler) GetAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Snapshot())
}

// Refresh publishes the refresh signal; the feed refetches asynchronously.
func (h *Handler) Refresh(c *gin.Context) {
	h.bus.Publish(eventbus.RefreshAlerts)
	c.JSON(http.StatusAccepted, gin.H{"message": "Refresh queued"})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Secret     string `json:"secret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid sign-in request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.sessions.SignIn(c.Request.Context(), req.Identifier, req.Secret)
	if err != nil {
		h.logger.Infof("Sign-in rejected for %s", req.Identifier)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) SignOut(c *gin.Context) {
	h.sessions.SignOut(c.Request.Context(), bearerToken(c))
	c.Status(http.StatusNoContent)
}

// Stream upgrades the connection and attaches it to the hub, which pushes a
// feed_updated event after every successful refresh.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	h.hub.Add(conn)
	go func() {
		defer h.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
