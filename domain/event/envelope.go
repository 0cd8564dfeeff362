package event

import (
	"encoding/json"
	"fmt"
	"time"

	"emergency-hub/domain"
	hub "emergency-hub/errors"
)

// Envelope is the unit actually written to the wire. An envelope emitted
// after a successful durable write always carries the persisted entity's
// id inside its payload, so consumers can deduplicate against snapshots.
type Envelope struct {
	Kind      Kind            `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	EmittedAt time.Time       `json:"emittedAt"`
}

// Wrap serializes a domain event into its wire envelope.
func Wrap(e DomainEvent, now time.Time) (Envelope, error) {
	var payload any
	switch evt := e.(type) {
	case AlertCreated:
		payload = evt.Alert
	case AlertUpdated:
		payload = evt.Alert
	case ActivityRecorded:
		payload = evt.Activity
	case ContactCreated:
		payload = evt.Contact
	case ContactUpdated:
		payload = evt.Contact
	case ContactDeleted:
		payload = map[string]string{"id": evt.ContactID}
	default:
		return Envelope{}, fmt.Errorf("%w: %T", hub.ErrUnknownEventKind, e)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Kind: e.EventKind(), Payload: raw, EmittedAt: now}, nil
}

// Unwrap decodes an envelope back into its domain event. Consumers use it
// to feed received envelopes into their local timeline.
func (env Envelope) Unwrap() (DomainEvent, error) {
	switch env.Kind {
	case KindPanicAlert, KindPanicUpdated:
		var alert domain.PanicAlert
		if err := json.Unmarshal(env.Payload, &alert); err != nil {
			return nil, err
		}
		if env.Kind == KindPanicAlert {
			return AlertCreated{Alert: alert}, nil
		}
		return AlertUpdated{Alert: alert}, nil
	case KindActivity:
		var activity domain.ActivityEvent
		if err := json.Unmarshal(env.Payload, &activity); err != nil {
			return nil, err
		}
		return ActivityRecorded{Activity: activity}, nil
	case KindContactCreated, KindContactUpdated:
		var contact domain.Contact
		if err := json.Unmarshal(env.Payload, &contact); err != nil {
			return nil, err
		}
		if env.Kind == KindContactCreated {
			return ContactCreated{Contact: contact}, nil
		}
		return ContactUpdated{Contact: contact}, nil
	case KindContactDeleted:
		var marker struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(env.Payload, &marker); err != nil {
			return nil, err
		}
		return ContactDeleted{ContactID: marker.ID}, nil
	}
	return nil, fmt.Errorf("%w: %q", hub.ErrUnknownEventKind, env.Kind)
}
