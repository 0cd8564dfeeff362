// Package projection builds local timelines from observed events.
// Handles ordering, deduplication, and snapshot merging.
// Does not emit events or interact with the transport directly.
package projection

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"emergency-hub/domain"
	"emergency-hub/domain/event"
)

// Entry is one row of the merged admin timeline. Exactly one of Alert,
// Activity, Contact is set, matching Kind.
type Entry struct {
	ID       string
	Kind     event.Kind
	At       time.Time
	Alert    *domain.PanicAlert
	Activity *domain.ActivityEvent
	Contact  *domain.Contact
}

// Timeline merges a durable snapshot with the live stream into one
// deduplicated, time-ordered view. The merge is keyed by entity id, not
// insertion order: a live envelope duplicating a snapshot row is a no-op.
//
// Between (re)connect and the snapshot merge, live events are buffered so
// nothing received before the snapshot lands is lost.
type Timeline struct {
	mu      sync.Mutex
	merged  bool
	pending []event.DomainEvent
	entries map[string]Entry
}

func NewTimeline() *Timeline {
	return &Timeline{entries: make(map[string]Entry)}
}

// BeginCatchup switches the timeline back into buffering mode. The client
// calls it before (re)dialing so envelopes racing the snapshot fetch are
// held instead of applied out of order.
func (t *Timeline) BeginCatchup() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.merged = false
}

// Merge folds a fresh snapshot in, then replays everything buffered since
// BeginCatchup. Replay after merge is idempotent: rows already present by
// id are not duplicated.
func (t *Timeline) Merge(alerts []domain.PanicAlert, activities []domain.ActivityEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, alert := range alerts {
		t.upsertAlert(alert)
	}
	for _, activity := range activities {
		a := activity
		t.entries[a.ID.String()] = Entry{
			ID:       a.ID.String(),
			Kind:     event.KindActivity,
			At:       a.Timestamp,
			Activity: &a,
		}
	}
	t.merged = true
	for _, e := range t.pending {
		t.apply(e)
	}
	t.pending = nil
}

// Consume feeds one live event into the timeline, buffering while a
// snapshot merge is still in flight.
func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.merged {
		t.pending = append(t.pending, e)
		return nil
	}
	t.apply(e)
	return nil
}

func (t *Timeline) apply(e event.DomainEvent) {
	switch evt := e.(type) {
	case event.AlertCreated:
		// Creation already present from the snapshot wins: same id,
		// same record.
		if _, ok := t.entries[evt.Alert.ID.String()]; ok {
			return
		}
		t.upsertAlert(evt.Alert)
	case event.AlertUpdated:
		// Status mutations always replace: the broadcast carries the
		// newer record for the same id.
		t.upsertAlert(evt.Alert)
	case event.ActivityRecorded:
		id := evt.Activity.ID.String()
		if _, ok := t.entries[id]; ok {
			return
		}
		a := evt.Activity
		t.entries[id] = Entry{
			ID:       id,
			Kind:     event.KindActivity,
			At:       a.Timestamp,
			Activity: &a,
		}
	case event.ContactCreated:
		t.upsertContact(event.KindContactCreated, evt.Contact)
	case event.ContactUpdated:
		t.upsertContact(event.KindContactUpdated, evt.Contact)
	case event.ContactDeleted:
		delete(t.entries, evt.ContactID)
	}
}

// upsertAlert stores the alert under its id. The sort key is the
// record's intrinsic time: creation time while active, the mutation time
// once acknowledged or resolved.
func (t *Timeline) upsertAlert(alert domain.PanicAlert) {
	a := alert
	at := a.CreatedAt
	kind := event.KindPanicAlert
	switch {
	case a.ResolvedAt != nil:
		at = *a.ResolvedAt
		kind = event.KindPanicUpdated
	case a.AcknowledgedAt != nil:
		at = *a.AcknowledgedAt
		kind = event.KindPanicUpdated
	}
	t.entries[a.ID.String()] = Entry{
		ID:    a.ID.String(),
		Kind:  kind,
		At:    at,
		Alert: &a,
	}
}

func (t *Timeline) upsertContact(kind event.Kind, contact domain.Contact) {
	c := contact
	at := c.UpdatedAt
	if at.IsZero() {
		at = c.CreatedAt
	}
	t.entries[c.ID] = Entry{
		ID:      c.ID,
		Kind:    kind,
		At:      at,
		Contact: &c,
	}
}

// Entries returns the merged view, newest first. Ties break on id so the
// order is stable across renders.
func (t *Timeline) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := lo.Values(t.entries)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].At.Equal(entries[j].At) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].At.After(entries[j].At)
	})
	return entries
}

// IDs returns the set of entity ids currently in the timeline.
func (t *Timeline) IDs() map[string]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make(map[string]struct{}, len(t.entries))
	for id := range t.entries {
		ids[id] = struct{}{}
	}
	return ids
}
