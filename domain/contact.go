package domain

import "time"

// Contact is a snapshot of an emergency contact as broadcast in
// contact-mutation envelopes. Contact persistence is owned by the
// contact store collaborator; this module never writes contacts.
type Contact struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Category     Category  `json:"category"`
	Description  string    `json:"description,omitempty"`
	Location     *Location `json:"location,omitempty"`
	IsPredefined bool      `json:"isPredefined"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
