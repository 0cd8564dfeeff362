package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"emergency-hub/domain/event"
)

type nopSink struct{}

func (nopSink) Consume(context.Context, event.DomainEvent) error { return nil }

func Test_Register_And_Join(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Register("s-1", nopSink{})
	registry.Register("s-2", nopSink{})
	registry.Join("s-1", "admins")

	req.Len(registry.Sessions, 2)
	req.Len(registry.Sinks(), 2)
	req.Len(registry.MembersOf("admins"), 1)
}

func Test_Register_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Register("s-1", nopSink{})
	registry.Register("s-1", nopSink{})

	req.Len(registry.Sessions, 1)
	req.Len(registry.Sinks(), 1)
}

func Test_Join_Unknown_Session_Is_Noop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Join("ghost", "admins")

	req.Empty(registry.RoomMembers)
	req.Nil(registry.MembersOf("admins"))
}

func Test_Deregister_Releases_All_Rooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Register("s-1", nopSink{})
	registry.Register("s-2", nopSink{})
	registry.Join("s-1", "admins")
	registry.Join("s-1", "watchers")
	registry.Join("s-2", "admins")

	registry.Deregister("s-1")

	req.Len(registry.Sessions, 1)
	req.Len(registry.MembersOf("admins"), 1)
	// s-1 was the only watcher, so the room itself is gone
	_, exists := registry.RoomMembers["watchers"]
	req.False(exists)
}
