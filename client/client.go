// Package client implements the consumer side of the distribution
// contract: a reconnecting subscriber that merges the durable snapshot
// with the live stream into a projection.Timeline.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"

	"emergency-hub/domain"
	"emergency-hub/domain/event"
	"emergency-hub/projection"
)

const (
	// Mirrors the reconnection policy of the browser client: a fixed
	// delay between attempts and a bounded attempt count.
	DefaultRetryAttempts = 5
	DefaultRetryDelay    = time.Second
)

type Client struct {
	baseURL       string
	wsURL         string
	room          string
	snapshotLimit int
	retryAttempts int
	retryDelay    time.Duration
	http          *resty.Client
	dialer        *websocket.Dialer
	timeline      *projection.Timeline
	log           *slog.Logger
}

func New(baseURL, wsURL, room string, snapshotLimit int, timeline *projection.Timeline, log *slog.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		wsURL:         wsURL,
		room:          room,
		snapshotLimit: snapshotLimit,
		retryAttempts: DefaultRetryAttempts,
		retryDelay:    DefaultRetryDelay,
		http:          resty.New().SetBaseURL(baseURL),
		dialer:        websocket.DefaultDialer,
		timeline:      timeline,
		log:           log,
	}
}

func (c *Client) Timeline() *projection.Timeline {
	return c.timeline
}

// Run keeps a live subscription open until the context is cancelled or
// the retry attempts run out. Each (re)connect follows the gap-free
// protocol: subscribe first, then fetch the snapshot, then merge. Any
// envelope racing the fetch is buffered by the timeline, so the admin
// view shows no gap and no duplicate across a reconnect window.
func (c *Client) Run(ctx context.Context) error {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.timeline.BeginCatchup()
		conn, _, err := c.dialer.DialContext(ctx, c.wsURL, nil)
		if err != nil {
			attempts++
			if attempts >= c.retryAttempts {
				return fmt.Errorf("giving up after %d connection attempts: %w", attempts, err)
			}
			c.log.Warn("connection failed, retrying", "attempt", attempts, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
			continue
		}
		attempts = 0
		c.log.Info("subscribed to live stream", "url", c.wsURL)

		if c.room != "" {
			if err := conn.WriteJSON(map[string]string{"action": "join", "room": c.room}); err != nil {
				c.log.Warn("failed to join room", "room", c.room, "error", err)
			}
		}

		if err := c.fetchAndMerge(ctx); err != nil {
			// Without the snapshot the timeline may have gaps; drop the
			// connection and start the cycle over.
			c.log.Error("snapshot fetch failed", "error", err)
			_ = conn.Close()
			continue
		}

		c.readLoop(ctx, conn)
		_ = conn.Close()
		c.log.Warn("live stream lost, reconnecting")
	}
}

// fetchAndMerge pulls the bounded historical snapshot for each durable
// kind and folds it into the timeline.
func (c *Client) fetchAndMerge(ctx context.Context) error {
	var alertPage struct {
		Success bool               `json:"success"`
		Data    []domain.PanicAlert `json:"data"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", c.snapshotLimit)).
		SetResult(&alertPage).
		Get("/api/alerts")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("alert snapshot fetch returned %s", resp.Status())
	}

	var activityPage struct {
		Activities []domain.ActivityEvent `json:"activities"`
		Total      int                    `json:"total"`
	}
	resp, err = c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", c.snapshotLimit)).
		SetResult(&activityPage).
		Get("/api/activities")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("activity snapshot fetch returned %s", resp.Status())
	}

	c.timeline.Merge(alertPage.Data, activityPage.Activities)
	return nil
}

// readLoop decodes envelopes until the connection dies or the context is
// cancelled. Undecodable envelopes are skipped: a foreign kind must not
// kill the subscription.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var env event.Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			e, err := env.Unwrap()
			if err != nil {
				c.log.Warn("skipping undecodable envelope", "kind", env.Kind, "error", err)
				continue
			}
			_ = c.timeline.Consume(ctx, e)
		}
	}()

	select {
	case <-ctx.Done():
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
		<-done
	case <-done:
	}
}
