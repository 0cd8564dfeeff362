// Package runtime owns the live distribution machinery: the connection
// registry of subscriber sessions and the event dispatcher that persists
// durable events and fans them out.
package runtime

import (
	"sync"

	"github.com/samber/lo"

	"emergency-hub/contract"
)

type Set map[string]struct{}

// Registry tracks connected subscriber sessions and their room
// memberships. All state is in-memory and session-scoped: a deregistered
// session leaves no membership behind.
type Registry struct {
	mu          sync.RWMutex
	Sessions    map[string]contract.EventSink // map session -> Sink
	RoomMembers map[string]Set                // map room to sessions
}

func NewRegistry() *Registry {
	return &Registry{
		Sessions:    make(map[string]contract.EventSink),
		RoomMembers: make(map[string]Set),
	}
}

// Register adds a session's sink to the global directory. Idempotent:
// re-registering the same id simply replaces the sink.
func (r *Registry) Register(sessionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sessions[sessionID] = sink
}

// Deregister removes a session and releases all of its room memberships
// in one critical section, so no dangling membership entry can be
// observed by a concurrent broadcast.
func (r *Registry) Deregister(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Sessions, sessionID)

	for room, members := range r.RoomMembers {
		delete(members, sessionID)

		// If no one is left in the room, remove the room entry entirely
		if len(members) == 0 {
			delete(r.RoomMembers, room)
		}
	}
}

// Join adds a session to a room, creating the room on the fly. Joining
// with an unknown session id is a no-op: the membership would be
// unreachable anyway.
func (r *Registry) Join(sessionID string, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Sessions[sessionID]; !ok {
		return
	}
	if _, ok := r.RoomMembers[room]; !ok {
		r.RoomMembers[room] = make(Set)
	}
	r.RoomMembers[room][sessionID] = struct{}{}
}

// MembersOf resolves a room's current membership into sinks.
// Returns nil if the room doesn't exist or has no members.
func (r *Registry) MembersOf(room string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.RoomMembers[room]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for sessionID := range members {
		if sink, exists := r.Sessions[sessionID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Sinks snapshots every connected session's sink. This is the default
// broadcast scope: all events currently go to every connected admin
// viewer, rooms exist for future scoping.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Values(r.Sessions)
}
