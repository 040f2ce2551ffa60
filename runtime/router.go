package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"opsroom/contract"
	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/errors"
)

// Authority is the membership gate consulted before any room join.
type Authority interface {
	IsMember(ctx context.Context, userID, teamID string) (bool, error)
}

// TeamLister provides the membership snapshot used to auto-join rooms at
// connect time.
type TeamLister interface {
	ListUserTeams(userID string) ([]string, error)
}

// DisconnectListener receives the teams a session belonged to when it
// closes, so the offline-status cascade can run.
type DisconnectListener interface {
	SessionClosed(ctx context.Context, userID string, teamIDs []string)
}

// Router registers sessions, manages their room membership, and routes
// outbound events. Delivery goes through a single buffered channel drained
// by the fan-out worker, which preserves per-room emission order. The
// channel is best-effort: when full, events are dropped with a warning.
// Durable state lives in the record store, not in the live stream.
type Router struct {
	log        *slog.Logger
	registry   *Registry
	authority  Authority
	teams      TeamLister
	deliveries chan contract.Delivery
	onClose    DisconnectListener
}

func NewRouter(log *slog.Logger, registry *Registry, authority Authority,
	teams TeamLister, bufferSize int) *Router {
	return &Router{
		log:        log,
		registry:   registry,
		authority:  authority,
		teams:      teams,
		deliveries: make(chan contract.Delivery, bufferSize),
	}
}

// SetDisconnectListener wires the offline-status cascade. Set once during
// startup, before any connection is accepted.
func (r *Router) SetDisconnectListener(listener DisconnectListener) {
	r.onClose = listener
}

// Deliveries exposes the routed event channel to the fan-out worker.
func (r *Router) Deliveries() <-chan contract.Delivery { return r.deliveries }

// Connect registers an authenticated session and auto-joins it to a room
// for every team the user currently belongs to. The team list is a
// snapshot; join_team/leave_team are the only mid-session refresh.
// A previous session for the same user is superseded.
func (r *Router) Connect(identity domain.Identity, sink contract.EventSink) (*Session, error) {
	teams, err := r.teams.ListUserTeams(identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list teams for %s: %w", identity.UserID, err)
	}

	session := NewSession(identity.UserID, sink)
	if replaced := r.registry.Register(session); replaced != nil {
		r.log.Info("superseding previous connection",
			"user_id", identity.UserID, "old_session", replaced.ID)
		// The stale connection receives no further events; release its
		// writer instead of leaving it pinging forever.
		replaced.Sink().Close()
	}
	for _, teamID := range teams {
		r.registry.Join(session, domain.RoomName(teamID))
	}
	return session, nil
}

// Disconnect removes the session and notifies the disconnect listener with
// every team the user belongs to, so each of them can be marked offline and
// told about it. Memberships, not the session's room set: a session that
// left a room still belongs to that team and must go offline there too.
func (r *Router) Disconnect(ctx context.Context, session *Session) {
	rooms, ok := r.registry.Unregister(session.ID)
	if !ok {
		return
	}
	if r.onClose == nil {
		return
	}
	teamIDs, err := r.teams.ListUserTeams(session.UserID)
	if err != nil {
		// Degraded fallback: the joined rooms are a subset of the
		// memberships, better than skipping the cascade entirely.
		r.log.Warn("failed to resolve teams for disconnect cascade",
			"user_id", session.UserID, "error", err)
		teamIDs = teamIDs[:0]
		for _, room := range rooms {
			if teamID, isTeam := domain.TeamIDFromRoom(room); isTeam {
				teamIDs = append(teamIDs, teamID)
			}
		}
	}
	r.onClose.SessionClosed(ctx, session.UserID, teamIDs)
}

// JoinRoom re-validates membership before subscribing. A non-member gets an
// authorization error the transport surfaces as an in-band error event; the
// connection stays open.
func (r *Router) JoinRoom(ctx context.Context, session *Session, teamID string) error {
	member, err := r.authority.IsMember(ctx, session.UserID, teamID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("join %s: %w", teamID, errors.ErrNotTeamMember)
	}
	r.registry.Join(session, domain.RoomName(teamID))
	return nil
}

// LeaveRoom is unconditional and idempotent.
func (r *Router) LeaveRoom(session *Session, teamID string) {
	r.registry.Leave(session, domain.RoomName(teamID))
}

// Broadcast routes an event to every session joined to the room.
func (r *Router) Broadcast(room string, evt event.Outbound) {
	r.dispatch(contract.Delivery{Room: room, Event: evt})
}

// BroadcastExcluding routes an event to the room, skipping one session.
func (r *Router) BroadcastExcluding(room string, evt event.Outbound, excludedSessionID string) {
	r.dispatch(contract.Delivery{Room: room, Event: evt, Exclude: excludedSessionID})
}

// Unicast routes an event to a user's current session. Silently a no-op
// when the user has no live session: offline delivery is not guaranteed,
// the durable notification row backs it.
func (r *Router) Unicast(userID string, evt event.Outbound) {
	r.dispatch(contract.Delivery{UserID: userID, Event: evt})
}

func (r *Router) dispatch(delivery contract.Delivery) {
	select {
	case r.deliveries <- delivery:
	default:
		r.log.Warn("delivery channel full, dropping event",
			"event", delivery.Event.EventName(), "room", delivery.Room, "user_id", delivery.UserID)
	}
}

// Registry exposes the underlying registry for observability and transports.
func (r *Router) Registry() *Registry { return r.registry }
