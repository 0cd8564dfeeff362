// Package api exposes the request/response surface of the distribution
// core: panic alert submission and administration, activity recording and
// listing, and the websocket upgrade endpoint.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	hub "emergency-hub/errors"
	"emergency-hub/runtime"
	"emergency-hub/ws"
)

var validate = validator.New()

type Handler struct {
	dispatcher *runtime.Dispatcher
	live       *ws.Handler
	log        *slog.Logger
}

func NewHandler(dispatcher *runtime.Dispatcher, live *ws.Handler, log *slog.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, live: live, log: log}
}

func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/api/alerts", h.CreateAlert)
	router.GET("/api/alerts", h.ListAlerts)
	router.GET("/api/alerts/stats/summary", h.AlertStats)
	router.GET("/api/alerts/:id", h.GetAlert)
	router.PATCH("/api/alerts/:id/status", h.UpdateAlertStatus)
	router.DELETE("/api/alerts/:id", h.DeleteAlert)

	router.POST("/api/activities", h.RecordActivity)
	router.GET("/api/activities", h.ListActivities)
	router.GET("/api/activities/stats", h.ActivityStats)
	router.DELETE("/api/activities/:id", h.DeleteActivity)

	router.GET("/api/health", h.Health)
	router.GET("/ws", h.live.Serve)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Emergency Contact Hub API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError maps the error taxonomy onto HTTP statuses. Persistence
// failures are 503 so producers know a retry may succeed; transition
// violations are conflicts, not bad requests.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, hub.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, hub.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, hub.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, hub.ErrPersistence):
		h.log.Error("durable store failure", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "event store unavailable, please retry"})
	default:
		h.log.Error("unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong"})
	}
}
