package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"emergency-hub/domain"
	hub "emergency-hub/errors"
	"emergency-hub/repositories"
)

// The activity submission keeps the flat user fields the frontend sends.
type recordActivityRequest struct {
	UserName  string           `json:"userName" validate:"required"`
	UserEmail string           `json:"userEmail" validate:"required,email"`
	UserID    string           `json:"userId" validate:"required"`
	Category  domain.Category  `json:"category" validate:"required"`
	Location  *domain.Location `json:"location"`
	Timestamp *time.Time       `json:"timestamp"`
}

func (h *Handler) RecordActivity(c *gin.Context) {
	var req recordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", hub.ErrValidation, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondError(c, fmt.Errorf("%w: user information is required (userName, userEmail, userId)", hub.ErrValidation))
		return
	}

	user := domain.UserIdentity{Name: req.UserName, Email: req.UserEmail, ID: req.UserID}
	activity, err := h.dispatcher.RecordActivity(c.Request.Context(), user, req.Category, req.Location, req.Timestamp)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func (h *Handler) ListActivities(c *gin.Context) {
	filter := repositories.ActivityFilter{
		Page:   1,
		Limit:  repositories.DefaultActivityPageSize,
		UserID: c.Query("userId"),
	}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(c, fmt.Errorf("%w: page must be a positive number", hub.ErrValidation))
			return
		}
		filter.Page = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(c, fmt.Errorf("%w: limit must be a positive number", hub.ErrValidation))
			return
		}
		filter.Limit = n
	}
	// "all" disables the category filter, mirroring the dashboard dropdown.
	if raw := c.Query("category"); raw != "" && raw != "all" {
		category := domain.Category(raw)
		if !category.Valid() {
			h.respondError(c, fmt.Errorf("%w: unknown category %q", hub.ErrValidation, raw))
			return
		}
		filter.Category = &category
	}

	activities, total, err := h.dispatcher.ListActivities(filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	totalPages := total / filter.Limit
	if total%filter.Limit != 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, gin.H{
		"activities":  activities,
		"totalPages":  totalPages,
		"currentPage": filter.Page,
		"total":       total,
	})
}

func (h *Handler) DeleteActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.dispatcher.DeleteActivity(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted successfully"})
}

const recentActivityLimit = 10

func (h *Handler) ActivityStats(c *gin.Context) {
	stats, err := h.dispatcher.ActivityStats(recentActivityLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
