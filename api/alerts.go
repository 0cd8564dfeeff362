package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"emergency-hub/domain"
	hub "emergency-hub/errors"
)

const defaultAlertPageSize = 50

type createAlertRequest struct {
	Message  string              `json:"message"`
	User     domain.UserIdentity `json:"user" validate:"required"`
	Location *domain.Location    `json:"location"`
}

type updateStatusRequest struct {
	Status         domain.Status `json:"status" validate:"required"`
	AcknowledgedBy string        `json:"acknowledgedBy"`
}

func (h *Handler) CreateAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", hub.ErrValidation, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondError(c, fmt.Errorf("%w: user information is required (name, email, id)", hub.ErrValidation))
		return
	}

	alert, err := h.dispatcher.CreateAlert(c.Request.Context(), req.Message, req.User, req.Location)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Panic alert created successfully",
		"data":    alert,
	})
}

func (h *Handler) ListAlerts(c *gin.Context) {
	var status *domain.Status
	if raw := c.Query("status"); raw != "" {
		s := domain.Status(raw)
		if !s.Valid() {
			h.respondError(c, fmt.Errorf("%w: status must be one of: active, acknowledged, resolved", hub.ErrValidation))
			return
		}
		status = &s
	}

	limit := defaultAlertPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(c, fmt.Errorf("%w: limit must be a positive number", hub.ErrValidation))
			return
		}
		limit = n
	}

	alerts, err := h.dispatcher.ListAlerts(status, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    alerts,
		"count":   len(alerts),
	})
}

func (h *Handler) GetAlert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	alert, err := h.dispatcher.GetAlert(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alert})
}

func (h *Handler) UpdateAlertStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", hub.ErrValidation, err))
		return
	}
	if !req.Status.Valid() {
		h.respondError(c, fmt.Errorf("%w: valid status is required (active, acknowledged, resolved)", hub.ErrValidation))
		return
	}

	alert, err := h.dispatcher.UpdateStatus(c.Request.Context(), id, req.Status, req.AcknowledgedBy)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Panic alert status updated",
		"data":    alert,
	})
}

func (h *Handler) DeleteAlert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.dispatcher.DeleteAlert(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Panic alert deleted successfully",
	})
}

func (h *Handler) AlertStats(c *gin.Context) {
	stats, err := h.dispatcher.AlertStats()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// helper to parse the entity id path param
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "id must be a valid identifier",
		})
		return uuid.Nil, false
	}
	return id, true
}
