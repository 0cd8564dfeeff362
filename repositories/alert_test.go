package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"emergency-hub/domain"
	hub "emergency-hub/errors"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func reporter(suffix string) domain.UserIdentity {
	return domain.UserIdentity{
		Name:  "Reporter " + suffix,
		Email: "reporter-" + suffix + "@example.com",
		ID:    "u-" + suffix,
	}
}

func Test_Store_And_Get_Alert(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	alert := domain.NewPanicAlert("help", reporter("1"), nil, time.Now().UTC())
	req.NoError(repository.StoreAlert(alert))

	fetched, err := repository.GetAlert(alert.ID)
	req.NoError(err)
	req.Equal(alert.ID, fetched.ID)
	req.Equal(alert.Message, fetched.Message)
	req.Equal(domain.StatusActive, fetched.Status)
}

func Test_Get_Unknown_Alert(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	_, err := repository.GetAlert(uuid.New())
	req.ErrorIs(err, hub.ErrNotFound)
}

func Test_List_Alerts_Newest_First(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	oldest := domain.NewPanicAlert("first", reporter("1"), nil, at)
	middle := domain.NewPanicAlert("second", reporter("2"), nil, at.Add(time.Minute))
	newest := domain.NewPanicAlert("third", reporter("3"), nil, at.Add(2*time.Minute))
	for _, alert := range []domain.PanicAlert{oldest, middle, newest} {
		req.NoError(repository.StoreAlert(alert))
	}

	alerts, err := repository.ListAlerts(nil, 0)
	req.NoError(err)
	req.Len(alerts, 3)
	req.Equal(newest.ID, alerts[0].ID)
	req.Equal(middle.ID, alerts[1].ID)
	req.Equal(oldest.ID, alerts[2].ID)

	limited, err := repository.ListAlerts(nil, 2)
	req.NoError(err)
	req.Len(limited, 2)
	req.Equal(newest.ID, limited[0].ID)
}

func Test_List_Alerts_Filtered_By_Status(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	open := domain.NewPanicAlert("open", reporter("1"), nil, at)
	closed := domain.NewPanicAlert("closed", reporter("2"), nil, at.Add(time.Minute))
	req.NoError(repository.StoreAlert(open))
	req.NoError(repository.StoreAlert(closed))
	_, err := repository.UpdateAlertStatus(closed.ID, domain.StatusResolved, "", time.Now().UTC())
	req.NoError(err)

	status := domain.StatusActive
	alerts, err := repository.ListAlerts(&status, 0)
	req.NoError(err)
	req.Len(alerts, 1)
	req.Equal(open.ID, alerts[0].ID)
}

func Test_Direct_Resolution_Leaves_Acknowledgement_Unset(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	alert := domain.NewPanicAlert("help", reporter("1"), nil, time.Now().UTC())
	req.NoError(repository.StoreAlert(alert))

	updated, err := repository.UpdateAlertStatus(alert.ID, domain.StatusResolved, "", time.Now().UTC())
	req.NoError(err)
	req.Equal(domain.StatusResolved, updated.Status)
	req.NotNil(updated.ResolvedAt)
	req.Nil(updated.AcknowledgedAt)
}

func Test_Acknowledge_Then_Resolve_Stamps_Both(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	alert := domain.NewPanicAlert("help", reporter("1"), nil, time.Now().UTC())
	req.NoError(repository.StoreAlert(alert))

	acknowledged, err := repository.UpdateAlertStatus(alert.ID, domain.StatusAcknowledged, "admin", time.Now().UTC())
	req.NoError(err)
	req.Equal("admin", acknowledged.AcknowledgedBy)
	req.NotNil(acknowledged.AcknowledgedAt)

	resolved, err := repository.UpdateAlertStatus(alert.ID, domain.StatusResolved, "", time.Now().UTC())
	req.NoError(err)
	req.NotNil(resolved.AcknowledgedAt)
	req.NotNil(resolved.ResolvedAt)
}

func Test_Backward_Transition_Is_Rejected_And_Record_Untouched(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	alert := domain.NewPanicAlert("help", reporter("1"), nil, time.Now().UTC())
	req.NoError(repository.StoreAlert(alert))
	_, err := repository.UpdateAlertStatus(alert.ID, domain.StatusAcknowledged, "admin", time.Now().UTC())
	req.NoError(err)

	_, err = repository.UpdateAlertStatus(alert.ID, domain.StatusActive, "", time.Now().UTC())
	req.ErrorIs(err, hub.ErrInvalidTransition)

	stored, err := repository.GetAlert(alert.ID)
	req.NoError(err)
	req.Equal(domain.StatusAcknowledged, stored.Status)
	req.Equal("admin", stored.AcknowledgedBy)
}

func Test_Update_Unknown_Alert(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	_, err := repository.UpdateAlertStatus(uuid.New(), domain.StatusResolved, "", time.Now().UTC())
	req.ErrorIs(err, hub.ErrNotFound)
}

func Test_Delete_Alert_Removes_Both_Keys(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	alert := domain.NewPanicAlert("help", reporter("1"), nil, time.Now().UTC())
	req.NoError(repository.StoreAlert(alert))
	req.NoError(repository.DeleteAlert(alert.ID))

	_, err := repository.GetAlert(alert.ID)
	req.ErrorIs(err, hub.ErrNotFound)
	alerts, err := repository.ListAlerts(nil, 0)
	req.NoError(err)
	req.Empty(alerts)

	req.ErrorIs(repository.DeleteAlert(alert.ID), hub.ErrNotFound)
}

func Test_Count_By_Status(t *testing.T) {
	req := require.New(t)
	repository := NewAlertRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	first := domain.NewPanicAlert("a", reporter("1"), nil, at)
	second := domain.NewPanicAlert("b", reporter("2"), nil, at.Add(time.Second))
	third := domain.NewPanicAlert("c", reporter("3"), nil, at.Add(2*time.Second))
	for _, alert := range []domain.PanicAlert{first, second, third} {
		req.NoError(repository.StoreAlert(alert))
	}
	_, err := repository.UpdateAlertStatus(second.ID, domain.StatusAcknowledged, "admin", time.Now().UTC())
	req.NoError(err)
	_, err = repository.UpdateAlertStatus(third.ID, domain.StatusResolved, "", time.Now().UTC())
	req.NoError(err)

	stats, err := repository.CountByStatus()
	req.NoError(err)
	req.Equal(AlertStats{Total: 3, Active: 1, Acknowledged: 1, Resolved: 1}, stats)
}
