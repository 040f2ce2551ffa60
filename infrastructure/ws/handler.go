package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"opsroom/auth"
	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/observability"
	"opsroom/runtime"
	"opsroom/services"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// Handler upgrades HTTP requests to realtime sessions. The first frame must
// authenticate; nothing else is processed before that, and a silent client
// is cut off at the handshake deadline.
type Handler struct {
	log        *slog.Logger
	tokens     *auth.TokenManager
	router     *runtime.Router
	status     services.IStatusService
	monitor    *observability.Monitor
	bufferSize int
	upgrader   websocket.Upgrader
}

func NewHandler(log *slog.Logger, tokens *auth.TokenManager, router *runtime.Router,
	status services.IStatusService, monitor *observability.Monitor, bufferSize int) *Handler {
	return &Handler{
		log:        log,
		tokens:     tokens,
		router:     router,
		status:     status,
		monitor:    monitor,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser clients carry the token in the first frame, not in a
			// header, so origin checking is left to the deployment proxy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", "error", err)
		return
	}

	identity, err := h.handshake(conn)
	if err != nil {
		h.log.Info("realtime handshake rejected", "error", err)
		_ = conn.WriteJSON(outFrame{Event: event.NameError, Data: event.Error{Message: "authentication failed"}})
		_ = conn.Close()
		return
	}

	sink := newConnSink(h.log, conn, h.bufferSize)
	go sink.writePump()

	session, err := h.router.Connect(identity, sink)
	if err != nil {
		h.log.Error("session connect failed", "user_id", identity.UserID, "error", err)
		sink.Close()
		return
	}
	h.monitor.IncrConnectionsOpened()
	h.log.Info("realtime session opened", "user_id", identity.UserID, "session_id", session.ID)

	h.readLoop(r, conn, session, sink)

	h.router.Disconnect(r.Context(), session)
	sink.Close()
	h.monitor.IncrConnectionsClosed()
	h.log.Info("realtime session closed", "user_id", identity.UserID, "session_id", session.ID)
}

// handshake reads the authenticate frame under a deadline. Any other frame,
// a bad token, or silence fails the connection.
func (h *Handler) handshake(conn *websocket.Conn) (domain.Identity, error) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return domain.Identity{}, err
	}
	var frame event.Frame
	if err := conn.ReadJSON(&frame); err != nil {
		return domain.Identity{}, fmt.Errorf("read handshake: %w", err)
	}
	if frame.Event != event.NameAuthenticate {
		return domain.Identity{}, fmt.Errorf("expected %s, got %q", event.NameAuthenticate, frame.Event)
	}
	var payload event.Authenticate
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		return domain.Identity{}, fmt.Errorf("decode handshake: %w", err)
	}
	return h.tokens.Resolve(payload.Token)
}

func (h *Handler) readLoop(r *http.Request, conn *websocket.Conn, session *runtime.Session, sink *connSink) {
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		var frame event.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("connection dropped", "session_id", session.ID, "error", err)
			}
			return
		}
		if err := h.dispatch(r, frame, session); err != nil {
			// Domain failures are in-band error events; the connection
			// stays open.
			h.sendError(sink, err)
		}
	}
}

func (h *Handler) dispatch(r *http.Request, frame event.Frame, session *runtime.Session) error {
	ctx := r.Context()
	switch frame.Event {
	case event.NameJoinTeam:
		var payload event.JoinTeam
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", frame.Event, err)
		}
		return h.router.JoinRoom(ctx, session, payload.TeamID)

	case event.NameLeaveTeam:
		var payload event.LeaveTeam
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", frame.Event, err)
		}
		h.router.LeaveRoom(session, payload.TeamID)
		return nil

	case event.NameTypingStart, event.NameTypingStop:
		var payload event.Typing
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", frame.Event, err)
		}
		return h.relayTyping(session, payload.TeamID, frame.Event == event.NameTypingStart)

	case event.NameStatusUpdate:
		var payload event.StatusChange
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", frame.Event, err)
		}
		return h.status.Update(ctx, session.UserID, payload.TeamID, domain.MemberStatus(payload.Status))

	default:
		return fmt.Errorf("unknown event %q", frame.Event)
	}
}

// relayTyping is ephemeral: never persisted, never echoed back to its
// origin, and only relayed when the sender is actually in the room.
func (h *Handler) relayTyping(session *runtime.Session, teamID string, isTyping bool) error {
	room := domain.RoomName(teamID)
	if !h.router.Registry().InRoom(session.ID, room) {
		return fmt.Errorf("not joined to team %s", teamID)
	}
	h.router.BroadcastExcluding(room, event.UserTyping{
		UserID:   session.UserID,
		IsTyping: isTyping,
	}, session.ID)
	return nil
}

func (h *Handler) sendError(sink *connSink, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if consumeErr := sink.Consume(ctx, event.Error{Message: err.Error()}); consumeErr != nil {
		h.log.Debug("failed to deliver in-band error", "error", consumeErr)
	}
}
