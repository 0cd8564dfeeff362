package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"emergency-hub/domain"
	"emergency-hub/repositories"
	"emergency-hub/runtime"
	"emergency-hub/ws"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.Default()
	registry := runtime.NewRegistry()
	dispatcher := runtime.NewDispatcher(log, registry,
		repositories.NewAlertRepository(db, log),
		repositories.NewActivityRepository(db, log),
		5*time.Second, time.Second)

	handler := NewHandler(dispatcher, ws.NewHandler(registry, 8, log), log)
	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func createAlert(t *testing.T, router *gin.Engine, message string) domain.PanicAlert {
	t.Helper()
	recorder := doJSON(t, router, http.MethodPost, "/api/alerts", gin.H{
		"message": message,
		"user":    gin.H{"name": "Alice", "email": "alice@example.com", "id": "u-1"},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var response struct {
		Data domain.PanicAlert `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response.Data
}

func Test_Create_Alert_Then_Fetch_It(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	created := createAlert(t, router, "")
	req.Equal(domain.DefaultAlertMessage, created.Message)
	req.Equal(domain.StatusActive, created.Status)

	recorder := doJSON(t, router, http.MethodGet, "/api/alerts/"+created.ID.String(), nil)
	req.Equal(http.StatusOK, recorder.Code)
	var response struct {
		Data domain.PanicAlert `json:"data"`
	}
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	req.Equal(created.ID, response.Data.ID)
}

func Test_Create_Alert_Without_User_Is_Rejected(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/alerts", gin.H{"message": "help"})
	req.Equal(http.StatusBadRequest, recorder.Code)
}

func Test_Fetch_Unknown_Alert(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/alerts/6f1c2b9e-0000-4000-8000-000000000000", nil)
	req.Equal(http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/alerts/not-an-id", nil)
	req.Equal(http.StatusBadRequest, recorder.Code)
}

func Test_Backward_Transition_Is_A_Conflict(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)
	created := createAlert(t, router, "help")

	recorder := doJSON(t, router, http.MethodPatch, "/api/alerts/"+created.ID.String()+"/status",
		gin.H{"status": "resolved"})
	req.Equal(http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPatch, "/api/alerts/"+created.ID.String()+"/status",
		gin.H{"status": "acknowledged", "acknowledgedBy": "admin"})
	req.Equal(http.StatusConflict, recorder.Code)
}

func Test_Unknown_Status_Is_A_Bad_Request(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)
	created := createAlert(t, router, "help")

	recorder := doJSON(t, router, http.MethodPatch, "/api/alerts/"+created.ID.String()+"/status",
		gin.H{"status": "archived"})
	req.Equal(http.StatusBadRequest, recorder.Code)
}

func Test_List_Alerts_Filter_And_Count(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)
	first := createAlert(t, router, "first")
	createAlert(t, router, "second")

	recorder := doJSON(t, router, http.MethodPatch, "/api/alerts/"+first.ID.String()+"/status",
		gin.H{"status": "resolved"})
	req.Equal(http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/alerts?status=active", nil)
	req.Equal(http.StatusOK, recorder.Code)
	var response struct {
		Data  []domain.PanicAlert `json:"data"`
		Count int                 `json:"count"`
	}
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	req.Equal(1, response.Count)
	req.Equal("second", response.Data[0].Message)
}

func Test_Alert_Stats_Summary(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)
	createAlert(t, router, "open")
	resolved := createAlert(t, router, "closing")
	recorder := doJSON(t, router, http.MethodPatch, "/api/alerts/"+resolved.ID.String()+"/status",
		gin.H{"status": "resolved"})
	req.Equal(http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/alerts/stats/summary", nil)
	req.Equal(http.StatusOK, recorder.Code)
	var response struct {
		Data repositories.AlertStats `json:"data"`
	}
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	req.Equal(repositories.AlertStats{Total: 2, Active: 1, Resolved: 1}, response.Data)
}

func Test_Record_And_List_Activities(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/activities", gin.H{
		"userName":  "Bob",
		"userEmail": "bob@example.com",
		"userId":    "u-2",
		"category":  "fire",
	})
	req.Equal(http.StatusCreated, recorder.Code)
	var created domain.ActivityEvent
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &created))
	req.Equal(domain.CategoryFire, created.Category)

	recorder = doJSON(t, router, http.MethodGet, "/api/activities?category=fire", nil)
	req.Equal(http.StatusOK, recorder.Code)
	var page struct {
		Activities  []domain.ActivityEvent `json:"activities"`
		Total       int                    `json:"total"`
		TotalPages  int                    `json:"totalPages"`
		CurrentPage int                    `json:"currentPage"`
	}
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &page))
	req.Equal(1, page.Total)
	req.Equal(1, page.TotalPages)
	req.Equal(created.ID, page.Activities[0].ID)

	recorder = doJSON(t, router, http.MethodGet, "/api/activities?category=earthquake", nil)
	req.Equal(http.StatusBadRequest, recorder.Code)
}

func Test_Record_Activity_Rejects_Unknown_Category(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/activities", gin.H{
		"userName":  "Bob",
		"userEmail": "bob@example.com",
		"userId":    "u-2",
		"category":  "earthquake",
	})
	req.Equal(http.StatusBadRequest, recorder.Code)
}

func Test_Delete_Activity(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/activities", gin.H{
		"userName":  "Bob",
		"userEmail": "bob@example.com",
		"userId":    "u-2",
		"category":  "medical",
	})
	req.Equal(http.StatusCreated, recorder.Code)
	var created domain.ActivityEvent
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &created))

	recorder = doJSON(t, router, http.MethodDelete, "/api/activities/"+created.ID.String(), nil)
	req.Equal(http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodDelete, "/api/activities/"+created.ID.String(), nil)
	req.Equal(http.StatusNotFound, recorder.Code)
}

func Test_Health_Endpoint(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/health", nil)
	req.Equal(http.StatusOK, recorder.Code)
	req.Contains(recorder.Body.String(), "Emergency Contact Hub API is running")
}
