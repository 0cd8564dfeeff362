// Package ws exposes the live subscription surface: each websocket
// connection becomes a subscriber session whose sink the dispatcher
// fans events out to.
package ws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"emergency-hub/domain/event"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Session owns one websocket connection. Consume hands events to the
// write pump through a buffered channel; a saturated channel drops the
// event rather than stalling the dispatcher, since the client recovers
// it from the snapshot on reconnect.
type Session struct {
	ID     string
	conn   *websocket.Conn
	events chan event.DomainEvent
	log    *slog.Logger
}

func NewSession(id string, conn *websocket.Conn, bufferSize int, log *slog.Logger) *Session {
	return &Session{
		ID:     id,
		conn:   conn,
		events: make(chan event.DomainEvent, bufferSize),
		log:    log,
	}
}

// Consume is called by the dispatcher's fan-out.
// Redirects the event through this session's channel; the write pump
// takes it from there.
func (s *Session) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("session %s buffer full, dropping %s", s.ID, e.EventKind())
	}
}

// WritePump serializes queued events into envelopes and pushes them down
// the connection. It blocks until the context is cancelled or a network
// error occurs; each send carries a bounded write deadline so one
// unresponsive client never wedges its own pump past the deadline.
func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-s.events:
			env, err := event.Wrap(e, time.Now().UTC())
			if err != nil {
				s.log.Error("failed to build envelope", "session_id", s.ID, "error", err)
				continue
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(env); err != nil {
				s.log.Warn("failed to push envelope to session",
					"session_id", s.ID,
					"kind", env.Kind,
					"error", err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
