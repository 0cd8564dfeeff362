package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"emergency-hub/contract"
	"emergency-hub/domain"
	"emergency-hub/domain/event"
	hub "emergency-hub/errors"
	"emergency-hub/repositories"
)

// Dispatcher is the single entry point for "something happened; persist it
// if it is of a durable kind, then tell everyone". Panic and activity
// events are durably written before any broadcast is attempted; contact
// mutations are already persisted upstream and are broadcast-only.
//
// Submissions of the same kind are serialized so that two events cannot
// be broadcast out of the order in which they were durably committed.
// No ordering holds across kinds: they are independent streams.
type Dispatcher struct {
	log            *slog.Logger
	registry       contract.IRegistry
	alerts         repositories.IAlertRepository
	activities     repositories.IActivityRepository
	permanentSinks []contract.EventSink
	alertMu        sync.Mutex
	activityMu     sync.Mutex
	persistTimeout time.Duration
	sinkTimeout    time.Duration
}

func NewDispatcher(log *slog.Logger, registry contract.IRegistry,
	alerts repositories.IAlertRepository, activities repositories.IActivityRepository,
	persistTimeout, sinkTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		log:            log,
		registry:       registry,
		alerts:         alerts,
		activities:     activities,
		persistTimeout: persistTimeout,
		sinkTimeout:    sinkTimeout,
	}
}

// Add registers sinks that receive every broadcast regardless of session
// lifecycle (server-side projections, audit hooks).
func (d *Dispatcher) Add(sinks ...contract.EventSink) {
	d.permanentSinks = append(d.permanentSinks, sinks...)
}

// CreateAlert assigns identity, durably stores the alert, then broadcasts
// it. On persistence failure nothing is broadcast and the producer decides
// on retry; the dispatcher never retries a durable write itself.
func (d *Dispatcher) CreateAlert(ctx context.Context, message string, user domain.UserIdentity, location *domain.Location) (domain.PanicAlert, error) {
	alert := domain.NewPanicAlert(message, user, location, time.Now().UTC())
	if err := d.Submit(ctx, event.AlertCreated{Alert: alert}); err != nil {
		return domain.PanicAlert{}, err
	}
	return alert, nil
}

// RecordActivity assigns identity to a category selection, durably stores
// it, then broadcasts it.
func (d *Dispatcher) RecordActivity(ctx context.Context, user domain.UserIdentity, category domain.Category, location *domain.Location, at *time.Time) (domain.ActivityEvent, error) {
	if !category.Valid() {
		return domain.ActivityEvent{}, fmt.Errorf("%w: category %q", hub.ErrValidation, category)
	}
	activity := domain.NewActivityEvent(user, category, location, at, time.Now().UTC())
	if err := d.Submit(ctx, event.ActivityRecorded{Activity: activity}); err != nil {
		return domain.ActivityEvent{}, err
	}
	return activity, nil
}

// Submit accepts a tagged event, persists it when its kind is durable,
// then fans it out to every connected session. Persist and broadcast run
// under the kind's lock, so committed order equals broadcast order.
func (d *Dispatcher) Submit(ctx context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.AlertCreated:
		d.alertMu.Lock()
		defer d.alertMu.Unlock()
		if err := d.persist(ctx, func() error { return d.alerts.StoreAlert(evt.Alert) }); err != nil {
			return err
		}
	case event.ActivityRecorded:
		d.activityMu.Lock()
		defer d.activityMu.Unlock()
		if err := d.persist(ctx, func() error { return d.activities.StoreActivity(evt.Activity) }); err != nil {
			return err
		}
	case event.AlertUpdated, event.ContactCreated, event.ContactUpdated, event.ContactDeleted:
		// Already durable (status updates go through UpdateStatus) or
		// fire-and-forget contact mutations: broadcast only.
	default:
		return fmt.Errorf("%w: %T", hub.ErrUnknownEventKind, e)
	}
	d.broadcast(ctx, e)
	return nil
}

// UpdateStatus validates and applies a forward-only status transition,
// then broadcasts the mutated record. The transition check runs inside
// the store's transaction so a concurrent update cannot slip between
// read and write.
func (d *Dispatcher) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.Status, actor string) (domain.PanicAlert, error) {
	if !next.Valid() {
		return domain.PanicAlert{}, fmt.Errorf("%w: status %q", hub.ErrValidation, next)
	}

	d.alertMu.Lock()
	defer d.alertMu.Unlock()

	var updated domain.PanicAlert
	err := d.persist(ctx, func() error {
		var err error
		updated, err = d.alerts.UpdateAlertStatus(id, next, actor, time.Now().UTC())
		return err
	})
	if err != nil {
		return domain.PanicAlert{}, err
	}
	d.broadcast(ctx, event.AlertUpdated{Alert: updated})
	return updated, nil
}

// ListAlerts returns a bounded, newest-first snapshot page for
// reconnect-time gap filling. No side effects.
func (d *Dispatcher) ListAlerts(status *domain.Status, limit int) ([]domain.PanicAlert, error) {
	return d.alerts.ListAlerts(status, limit)
}

func (d *Dispatcher) GetAlert(id uuid.UUID) (domain.PanicAlert, error) {
	return d.alerts.GetAlert(id)
}

func (d *Dispatcher) DeleteAlert(id uuid.UUID) error {
	return d.alerts.DeleteAlert(id)
}

func (d *Dispatcher) AlertStats() (repositories.AlertStats, error) {
	return d.alerts.CountByStatus()
}

func (d *Dispatcher) ListActivities(filter repositories.ActivityFilter) ([]domain.ActivityEvent, int, error) {
	return d.activities.ListActivities(filter)
}

func (d *Dispatcher) DeleteActivity(id uuid.UUID) error {
	return d.activities.DeleteActivity(id)
}

func (d *Dispatcher) ActivityStats(recentLimit int) (repositories.ActivityStats, error) {
	return d.activities.ActivityStats(recentLimit)
}

// persist runs a durable write under the configured timeout. A write that
// does not complete in time is reported as a persistence failure instead
// of leaving the producer hanging.
func (d *Dispatcher) persist(ctx context.Context, write func() error) error {
	persistCtx, cancel := context.WithTimeout(ctx, d.persistTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- write() }()

	select {
	case err := <-done:
		if err == nil {
			return nil
		}
		switch {
		case isCallerFault(err):
			return err
		default:
			return fmt.Errorf("%w: %v", hub.ErrPersistence, err)
		}
	case <-persistCtx.Done():
		return fmt.Errorf("%w: %v", hub.ErrPersistence, persistCtx.Err())
	}
}

// broadcast fans the event out to the permanent sinks and every
// registered session. Delivery is best-effort and independent per
// session: failures are logged and swallowed, never surfaced to the
// producer, because the durable write is the source of truth and the
// reconnect snapshot is the recovery path.
func (d *Dispatcher) broadcast(ctx context.Context, e event.DomainEvent) {
	sinks := append(append([]contract.EventSink{}, d.permanentSinks...), d.registry.Sinks()...)
	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, d.sinkTimeout)
		if err := sink.Consume(sinkCtx, e); err != nil {
			d.log.Warn("event delivery failed, session will recover via snapshot",
				"kind", e.EventKind(), "error", err)
		}
		cancel()
	}
}

// isCallerFault separates rejections the producer caused (unknown id,
// illegal transition) from genuine store failures, so they don't get
// reported as retryable persistence errors.
func isCallerFault(err error) bool {
	return errors.Is(err, hub.ErrNotFound) || errors.Is(err, hub.ErrInvalidTransition)
}
