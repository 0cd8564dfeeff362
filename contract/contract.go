//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"

	"emergency-hub/domain/event"
)

// EventSink receives broadcast events. Implementations must be cheap and
// non-blocking: a sink that cannot keep up drops rather than stalls the
// fan-out (the durable snapshot is the recovery path).
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks live subscriber sessions and their room memberships.
// Purely in-memory; rebuilt empty on process restart.
type IRegistry interface {
	Register(sessionID string, sink EventSink)
	Deregister(sessionID string)
	Join(sessionID string, room string)
	MembersOf(room string) []EventSink
	Sinks() []EventSink
}
