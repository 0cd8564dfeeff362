package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"emergency-hub/contract"
)

// controlFrame is the only inbound message a subscriber sends: a request
// to join a named room. Rooms are created implicitly on first join.
type controlFrame struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

type Handler struct {
	registry   contract.IRegistry
	bufferSize int
	upgrader   websocket.Upgrader
	log        *slog.Logger
}

func NewHandler(registry contract.IRegistry, bufferSize int, log *slog.Logger) *Handler {
	return &Handler{
		registry:   registry,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origins are enforced by the CORS layer upstream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve upgrades the request and runs the session until the client goes
// away. Registration is transport-scoped: the deferred deregistration
// atomically releases every room membership, so a vanished session can
// never linger in the fan-out set.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	session := NewSession(sessionID, conn, h.bufferSize, h.log)

	h.registry.Register(sessionID, session)
	defer h.registry.Deregister(sessionID)
	h.log.Info("session connected", "session_id", sessionID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go session.WritePump(ctx)

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			h.log.Info("session disconnected", "session_id", sessionID)
			return
		}
		var frame controlFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			h.log.Debug("ignoring malformed control frame", "session_id", sessionID)
			continue
		}
		if frame.Action == "join" && frame.Room != "" {
			h.registry.Join(sessionID, frame.Room)
			h.log.Info("session joined room", "session_id", sessionID, "room", frame.Room)
		}
	}
}
