// Package event defines the tagged events flowing through the dispatcher
// and the envelope format broadcast to subscriber sessions.
package event

import (
	"emergency-hub/domain"
)

// Kind tags an event on the wire. The names match the channels the
// admin frontend subscribes to.
type Kind string

const (
	KindPanicAlert     Kind = "panic:alert"
	KindPanicUpdated   Kind = "panic:updated"
	KindActivity       Kind = "user:category-selected"
	KindContactCreated Kind = "contact:created"
	KindContactUpdated Kind = "contact:updated"
	KindContactDeleted Kind = "contact:deleted"
)

// Durable reports whether events of this kind are persisted before
// broadcast. Contact mutations are fire-and-forget: their durability is
// owned upstream and they have no reconnect recovery path.
func (k Kind) Durable() bool {
	switch k {
	case KindPanicAlert, KindPanicUpdated, KindActivity:
		return true
	}
	return false
}

type DomainEvent interface {
	EventKind() Kind
}

type AlertCreated struct {
	Alert domain.PanicAlert
}

func (e AlertCreated) EventKind() Kind { return KindPanicAlert }

type AlertUpdated struct {
	Alert domain.PanicAlert
}

func (e AlertUpdated) EventKind() Kind { return KindPanicUpdated }

type ActivityRecorded struct {
	Activity domain.ActivityEvent
}

func (e ActivityRecorded) EventKind() Kind { return KindActivity }

type ContactCreated struct {
	Contact domain.Contact
}

func (e ContactCreated) EventKind() Kind { return KindContactCreated }

type ContactUpdated struct {
	Contact domain.Contact
}

func (e ContactUpdated) EventKind() Kind { return KindContactUpdated }

type ContactDeleted struct {
	ContactID string
}

func (e ContactDeleted) EventKind() Kind { return KindContactDeleted }
