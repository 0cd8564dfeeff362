// Package domain holds the entities of the emergency distribution core:
// panic alerts, category-selection activity, and contact snapshots.
// It contains no transport or storage concerns.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAlertMessage is used when a panic submission carries no message.
const DefaultAlertMessage = "PANIC BUTTON PRESSED!"

// Status is the lifecycle state of a panic alert.
type Status string

const (
	StatusActive       Status = "active"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusAcknowledged, StatusResolved:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only rule:
// active -> acknowledged -> resolved, or active -> resolved directly.
// A status never moves backward once advanced.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusActive:
		return next == StatusAcknowledged || next == StatusResolved
	case StatusAcknowledged:
		return next == StatusResolved
	}
	return false
}

// UserIdentity is the reporting user triple. All fields are required
// and treated as opaque strings; identity management lives elsewhere.
type UserIdentity struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	ID    string `json:"id" validate:"required"`
}

// Location is an optional position snapshot attached to alerts and activities.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// PanicAlert is the durable record of a panic button press.
// AcknowledgedAt is set iff the alert passed through acknowledged;
// ResolvedAt is set iff the alert reached resolved.
type PanicAlert struct {
	ID             uuid.UUID    `json:"id"`
	Message        string       `json:"message"`
	User           UserIdentity `json:"user"`
	Location       *Location    `json:"location,omitempty"`
	Status         Status       `json:"status"`
	AcknowledgedBy string       `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time   `json:"acknowledgedAt,omitempty"`
	ResolvedAt     *time.Time   `json:"resolvedAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// NewPanicAlert builds a fresh active alert with an assigned identity.
func NewPanicAlert(message string, user UserIdentity, location *Location, now time.Time) PanicAlert {
	if message == "" {
		message = DefaultAlertMessage
	}
	return PanicAlert{
		ID:        uuid.New(),
		Message:   message,
		User:      user,
		Location:  location,
		Status:    StatusActive,
		CreatedAt: now,
	}
}

// Advance applies a forward-only status transition, stamping the
// transition timestamps. It does not validate reachability; callers
// check CanTransitionTo first.
func (a *PanicAlert) Advance(next Status, actor string, now time.Time) {
	a.Status = next
	switch next {
	case StatusAcknowledged:
		a.AcknowledgedBy = actor
		a.AcknowledgedAt = &now
	case StatusResolved:
		a.ResolvedAt = &now
	}
}
