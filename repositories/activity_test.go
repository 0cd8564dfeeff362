package repositories

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"emergency-hub/domain"
	hub "emergency-hub/errors"
)

func storeActivities(t *testing.T, repository ActivityRepository, categories ...domain.Category) []domain.ActivityEvent {
	t.Helper()
	at := time.Now().UTC()
	activities := make([]domain.ActivityEvent, 0, len(categories))
	for i, category := range categories {
		activity := domain.NewActivityEvent(
			reporter(fmt.Sprintf("%d", i)), category, nil, nil, at.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repository.StoreActivity(activity))
		activities = append(activities, activity)
	}
	return activities
}

func Test_List_Activities_Newest_First(t *testing.T) {
	req := require.New(t)
	repository := NewActivityRepository(openTestDB(t), slog.Default())
	stored := storeActivities(t, repository,
		domain.CategoryPolice, domain.CategoryFire, domain.CategoryMedical)

	activities, total, err := repository.ListActivities(ActivityFilter{})
	req.NoError(err)
	req.Equal(3, total)
	req.Len(activities, 3)
	req.Equal(stored[2].ID, activities[0].ID)
	req.Equal(stored[0].ID, activities[2].ID)
}

func Test_List_Activities_Pagination(t *testing.T) {
	req := require.New(t)
	repository := NewActivityRepository(openTestDB(t), slog.Default())
	stored := storeActivities(t, repository,
		domain.CategoryPolice, domain.CategoryFire, domain.CategoryMedical,
		domain.CategoryAmbulance, domain.CategoryDisaster)

	pageOne, total, err := repository.ListActivities(ActivityFilter{Page: 1, Limit: 2})
	req.NoError(err)
	req.Equal(5, total)
	req.Len(pageOne, 2)
	req.Equal(stored[4].ID, pageOne[0].ID)

	pageThree, total, err := repository.ListActivities(ActivityFilter{Page: 3, Limit: 2})
	req.NoError(err)
	req.Equal(5, total)
	req.Len(pageThree, 1)
	req.Equal(stored[0].ID, pageThree[0].ID)
}

func Test_List_Activities_By_Category_Keeps_Newest(t *testing.T) {
	req := require.New(t)
	repository := NewActivityRepository(openTestDB(t), slog.Default())
	stored := storeActivities(t, repository,
		domain.CategoryFire, domain.CategoryPolice, domain.CategoryFire)

	fire := domain.CategoryFire
	activities, total, err := repository.ListActivities(ActivityFilter{Limit: 1, Category: &fire})
	req.NoError(err)
	req.Equal(2, total)
	req.Len(activities, 1)
	req.Equal(stored[2].ID, activities[0].ID)
}

func Test_List_Activities_By_User(t *testing.T) {
	req := require.New(t)
	repository := NewActivityRepository(openTestDB(t), slog.Default())
	stored := storeActivities(t, repository, domain.CategoryPolice, domain.CategoryFire)

	activities, total, err := repository.ListActivities(ActivityFilter{UserID: stored[0].User.ID})
	req.NoError(err)
	req.Equal(1, total)
	req.Len(activities, 1)
	req.Equal(stored[0].ID, activities[0].ID)
}

func Test_Delete_Activity(t *testing.T) {
	req := require.New(t)
	repository := NewActivityRepository(openTestDB(t), slog.Default())
	stored := storeActivities(t, repository, domain.CategoryOther)

	req.NoError(repository.DeleteActivity(stored[0].ID))
	_, total, err := repository.ListActivities(ActivityFilter{})
	req.NoError(err)
	req.Zero(total)

	req.ErrorIs(repository.DeleteActivity(uuid.New()), hub.ErrNotFound)
}

func Test_Activity_Stats(t *testing.T) {
	req := require.New(t)
	repository := NewActivityRepository(openTestDB(t), slog.Default())
	stored := storeActivities(t, repository,
		domain.CategoryFire, domain.CategoryFire, domain.CategoryMedical)

	stats, err := repository.ActivityStats(2)
	req.NoError(err)
	req.Equal(3, stats.Total)
	req.Equal(2, stats.CategoryCounts[domain.CategoryFire])
	req.Equal(1, stats.CategoryCounts[domain.CategoryMedical])
	req.Len(stats.RecentActivities, 2)
	req.Equal(stored[2].ID, stats.RecentActivities[0].ID)
}
