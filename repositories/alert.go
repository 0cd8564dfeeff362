//go:generate go run go.uber.org/mock/mockgen -source=alert.go -destination=../mocks/mock_alert_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"emergency-hub/domain"
	hub "emergency-hub/errors"
)

type IAlertRepository interface {
	StoreAlert(alert domain.PanicAlert) error
	GetAlert(id uuid.UUID) (domain.PanicAlert, error)
	UpdateAlertStatus(id uuid.UUID, next domain.Status, actor string, now time.Time) (domain.PanicAlert, error)
	ListAlerts(status *domain.Status, limit int) ([]domain.PanicAlert, error)
	DeleteAlert(id uuid.UUID) error
	CountByStatus() (AlertStats, error)
}

// AlertStats is the summary returned by the admin stats endpoint.
type AlertStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Acknowledged int `json:"acknowledged"`
	Resolved     int `json:"resolved"`
}

type AlertRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAlertRepository(db *badger.DB, log *slog.Logger) AlertRepository {
	return AlertRepository{db: db, log: log}
}

// Primary keys are "alert:{timestamp_padded}:{uuid}" so a reverse prefix
// scan yields newest-first pages without a separate index:
//  1. The 19-digit zero padding makes lexicographical order chronological.
//  2. The UUID suffix disambiguates two alerts created in the same nanosecond.
//
// A secondary "alertidx:{uuid}" entry points at the primary key for point
// lookups and status updates.
func alertKey(alert domain.PanicAlert) []byte {
	return []byte(fmt.Sprintf("alert:%019d:%s", alert.CreatedAt.UnixNano(), alert.ID))
}

func alertIdxKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("alertidx:%s", id))
}

func (r AlertRepository) StoreAlert(alert domain.PanicAlert) error {
	bytes, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	key := alertKey(alert)
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(alertIdxKey(alert.ID), key)
	})
}

func (r AlertRepository) GetAlert(id uuid.UUID) (domain.PanicAlert, error) {
	var alert domain.PanicAlert
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		alert, _, err = getAlertByID(txn, id)
		return err
	})
	return alert, err
}

// UpdateAlertStatus applies a forward-only transition atomically inside a
// single Badger transaction. Concurrent updates of the same alert conflict
// at commit time; the caller sees that as a persistence failure and retries.
func (r AlertRepository) UpdateAlertStatus(id uuid.UUID, next domain.Status, actor string, now time.Time) (domain.PanicAlert, error) {
	var updated domain.PanicAlert
	err := r.db.Update(func(txn *badger.Txn) error {
		alert, key, err := getAlertByID(txn, id)
		if err != nil {
			return err
		}
		if !alert.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", hub.ErrInvalidTransition, alert.Status, next)
		}
		alert.Advance(next, actor, now)
		bytes, err := json.Marshal(alert)
		if err != nil {
			return err
		}
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		updated = alert
		return nil
	})
	if err != nil {
		return domain.PanicAlert{}, err
	}
	return updated, nil
}

// ListAlerts walks the time-ordered keys in reverse, newest first.
// The optional status filter is applied after decoding; limit bounds the
// returned page, not the scan window per status bucket.
func (r AlertRepository) ListAlerts(status *domain.Status, limit int) ([]domain.PanicAlert, error) {
	var alerts []domain.PanicAlert
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("alert:")
		// Seek past the highest possible timestamp, then walk backwards.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(alerts) == limit {
				break
			}
			var alert domain.PanicAlert
			if err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &alert)
			}); err != nil {
				return err
			}
			if status != nil && alert.Status != *status {
				continue
			}
			alerts = append(alerts, alert)
		}
		return nil
	})
	return alerts, err
}

func (r AlertRepository) DeleteAlert(id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		_, key, err := getAlertByID(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(alertIdxKey(id))
	})
}

func (r AlertRepository) CountByStatus() (AlertStats, error) {
	var stats AlertStats
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("alert:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var alert domain.PanicAlert
			if err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &alert)
			}); err != nil {
				return err
			}
			stats.Total++
			switch alert.Status {
			case domain.StatusActive:
				stats.Active++
			case domain.StatusAcknowledged:
				stats.Acknowledged++
			case domain.StatusResolved:
				stats.Resolved++
			}
		}
		return nil
	})
	return stats, err
}

func getAlertByID(txn *badger.Txn, id uuid.UUID) (domain.PanicAlert, []byte, error) {
	item, err := txn.Get(alertIdxKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return domain.PanicAlert{}, nil, fmt.Errorf("%w: alert %s", hub.ErrNotFound, id)
		}
		return domain.PanicAlert{}, nil, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return domain.PanicAlert{}, nil, err
	}
	item, err = txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return domain.PanicAlert{}, nil, fmt.Errorf("%w: alert %s", hub.ErrNotFound, id)
		}
		return domain.PanicAlert{}, nil, err
	}
	var alert domain.PanicAlert
	if err := item.Value(func(value []byte) error {
		return json.Unmarshal(value, &alert)
	}); err != nil {
		return domain.PanicAlert{}, nil, err
	}
	return alert, key, nil
}
