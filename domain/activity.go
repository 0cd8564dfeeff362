package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Category is the closed enumeration of emergency categories a user can select.
type Category string

const (
	CategoryPolice    Category = "police"
	CategoryFire      Category = "fire"
	CategoryMedical   Category = "medical"
	CategoryAmbulance Category = "ambulance"
	CategoryDisaster  Category = "disaster"
	CategoryOther     Category = "other"
)

func Categories() []Category {
	return []Category{
		CategoryPolice, CategoryFire, CategoryMedical,
		CategoryAmbulance, CategoryDisaster, CategoryOther,
	}
}

func (c Category) Valid() bool {
	return lo.Contains(Categories(), c)
}

// ActivityEvent records a single category selection by a user.
// Immutable once created; only deletable by an administrator.
type ActivityEvent struct {
	ID        uuid.UUID    `json:"id"`
	User      UserIdentity `json:"user"`
	Category  Category     `json:"category"`
	Location  *Location    `json:"location,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewActivityEvent assigns identity and falls back to the server clock
// when the client supplied no timestamp.
func NewActivityEvent(user UserIdentity, category Category, location *Location, at *time.Time, now time.Time) ActivityEvent {
	ts := now
	if at != nil && !at.IsZero() {
		ts = *at
	}
	return ActivityEvent{
		ID:        uuid.New(),
		User:      user,
		Category:  category,
		Location:  location,
		Timestamp: ts,
	}
}
