package ws

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"emergency-hub/domain"
	"emergency-hub/domain/event"
	"emergency-hub/runtime"
)

func Test_Saturated_Session_Drops_Instead_Of_Blocking(t *testing.T) {
	req := require.New(t)
	session := NewSession("s-1", nil, 1, slog.Default())
	user := domain.UserIdentity{Name: "Alice", Email: "alice@example.com", ID: "u-1"}

	first := event.AlertCreated{Alert: domain.NewPanicAlert("one", user, nil, time.Now().UTC())}
	second := event.AlertCreated{Alert: domain.NewPanicAlert("two", user, nil, time.Now().UTC())}

	// No write pump is draining, so the second event overflows the buffer
	req.NoError(session.Consume(context.Background(), first))
	err := session.Consume(context.Background(), second)
	req.Error(err)
	req.Contains(err.Error(), "buffer full")
}

func Test_Consume_Honours_Cancelled_Context(t *testing.T) {
	req := require.New(t)
	session := NewSession("s-1", nil, 0, slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	user := domain.UserIdentity{Name: "Alice", Email: "alice@example.com", ID: "u-1"}
	e := event.AlertCreated{Alert: domain.NewPanicAlert("one", user, nil, time.Now().UTC())}
	// An unbuffered session with no pump: only the context exit applies
	req.ErrorIs(session.Consume(ctx, e), context.Canceled)
}

func Test_Connected_Session_Receives_Broadcast_Envelopes(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	registry := runtime.NewRegistry()
	handler := NewHandler(registry, 8, slog.Default())
	router := gin.New()
	router.GET("/ws", handler.Serve)
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	defer conn.Close()

	// Registration happens inside Serve; wait for the session to appear
	req.Eventually(func() bool {
		return len(registry.Sinks()) == 1
	}, time.Second, 10*time.Millisecond)

	user := domain.UserIdentity{Name: "Alice", Email: "alice@example.com", ID: "u-1"}
	alert := domain.NewPanicAlert("help", user, nil, time.Now().UTC())
	for _, sink := range registry.Sinks() {
		req.NoError(sink.Consume(context.Background(), event.AlertCreated{Alert: alert}))
	}

	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var env event.Envelope
	req.NoError(conn.ReadJSON(&env))
	req.Equal(event.KindPanicAlert, env.Kind)

	decoded, err := env.Unwrap()
	req.NoError(err)
	req.Equal(alert.ID, decoded.(event.AlertCreated).Alert.ID)
}

func Test_Join_Frame_Adds_Session_To_Room(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	registry := runtime.NewRegistry()
	handler := NewHandler(registry, 8, slog.Default())
	router := gin.New()
	router.GET("/ws", handler.Serve)
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	defer conn.Close()

	req.NoError(conn.WriteJSON(map[string]string{"action": "join", "room": "admins"}))

	req.Eventually(func() bool {
		return len(registry.MembersOf("admins")) == 1
	}, time.Second, 10*time.Millisecond)
}
