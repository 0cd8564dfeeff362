//go:generate go run go.uber.org/mock/mockgen -source=activity.go -destination=../mocks/mock_activity_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"emergency-hub/domain"
	hub "emergency-hub/errors"
)

type IActivityRepository interface {
	StoreActivity(activity domain.ActivityEvent) error
	ListActivities(filter ActivityFilter) ([]domain.ActivityEvent, int, error)
	DeleteActivity(id uuid.UUID) error
	ActivityStats(recentLimit int) (ActivityStats, error)
}

// ActivityFilter narrows and paginates an activity listing.
// Page is 1-based; a zero Limit falls back to DefaultActivityPageSize.
type ActivityFilter struct {
	Page     int
	Limit    int
	Category *domain.Category
	UserID   string
}

const DefaultActivityPageSize = 50

// ActivityStats aggregates the activity log for the admin dashboard.
type ActivityStats struct {
	Total            int                    `json:"totalActivities"`
	CategoryCounts   map[domain.Category]int `json:"categoryCounts"`
	RecentActivities []domain.ActivityEvent `json:"recentActivities"`
}

type ActivityRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewActivityRepository(db *badger.DB, log *slog.Logger) ActivityRepository {
	return ActivityRepository{db: db, log: log}
}

// Same key scheme as alerts: "activity:{timestamp_padded}:{uuid}" primary
// keys plus an "activityidx:{uuid}" pointer for deletion by id.
func activityKey(activity domain.ActivityEvent) []byte {
	return []byte(fmt.Sprintf("activity:%019d:%s", activity.Timestamp.UnixNano(), activity.ID))
}

func activityIdxKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("activityidx:%s", id))
}

func (r ActivityRepository) StoreActivity(activity domain.ActivityEvent) error {
	bytes, err := json.Marshal(activity)
	if err != nil {
		return err
	}
	key := activityKey(activity)
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(activityIdxKey(activity.ID), key)
	})
}

// ListActivities walks newest-first, counting every record that matches the
// filter and collecting only the requested page window. The second return
// value is the total match count, which the handler turns into page math.
func (r ActivityRepository) ListActivities(filter ActivityFilter) ([]domain.ActivityEvent, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultActivityPageSize
	}
	skip := (page - 1) * limit

	var activities []domain.ActivityEvent
	var total int
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("activity:")
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var activity domain.ActivityEvent
			if err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &activity)
			}); err != nil {
				return err
			}
			if filter.Category != nil && activity.Category != *filter.Category {
				continue
			}
			if filter.UserID != "" && activity.User.ID != filter.UserID {
				continue
			}
			if total >= skip && len(activities) < limit {
				activities = append(activities, activity)
			}
			total++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r ActivityRepository) DeleteActivity(id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(activityIdxKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: activity %s", hub.ErrNotFound, id)
			}
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(activityIdxKey(id))
	})
}

func (r ActivityRepository) ActivityStats(recentLimit int) (ActivityStats, error) {
	stats := ActivityStats{CategoryCounts: make(map[domain.Category]int)}
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("activity:")
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var activity domain.ActivityEvent
			if err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &activity)
			}); err != nil {
				return err
			}
			stats.Total++
			stats.CategoryCounts[activity.Category]++
			if len(stats.RecentActivities) < recentLimit {
				stats.RecentActivities = append(stats.RecentActivities, activity)
			}
		}
		return nil
	})
	return stats, err
}
