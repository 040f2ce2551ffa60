// Package runtime owns the realtime routing layer: the connection
// registry, room membership, and event distribution. It orchestrates
// delivery without containing domain rules.
package runtime

import (
	"sync"

	"opsroom/contract"

	"github.com/google/uuid"
)

// Session is one live connection's authenticated context. Its room set is
// guarded by the owning registry's lock.
type Session struct {
	ID     string
	UserID string
	sink   contract.EventSink
	rooms  map[string]struct{}
}

func NewSession(userID string, sink contract.EventSink) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		sink:   sink,
		rooms:  make(map[string]struct{}),
	}
}

func (s *Session) Sink() contract.EventSink { return s.sink }

// Registry is the process-wide connection map. At most one session is
// recorded per user: a new connection for the same user overwrites the
// previous mapping (last-connection-wins, no multi-device fan-out).
//
// It is the only mutable shared state of the realtime core, so every
// connect/disconnect/join/leave is a single atomic mutation under the lock.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*Session            // session id -> session
	byUser map[string]*Session            // user id -> current session
	rooms  map[string]map[string]*Session // room -> session id -> session
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]*Session),
		byUser: make(map[string]*Session),
		rooms:  make(map[string]map[string]*Session),
	}
}

// Register records a session. It returns the previous session for the same
// user, if any, so the caller can close the stale connection.
func (r *Registry) Register(session *Session) (replaced *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.byUser[session.UserID]; ok && previous.ID != session.ID {
		r.removeLocked(previous)
		replaced = previous
	}
	r.byID[session.ID] = session
	r.byUser[session.UserID] = session
	return replaced
}

// Unregister removes a session and returns the rooms it was joined to, so
// disconnect side effects can target the affected teams. Idempotent.
func (r *Registry) Unregister(sessionID string) (rooms []string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.byID[sessionID]
	if !exists {
		return nil, false
	}
	for room := range session.rooms {
		rooms = append(rooms, room)
	}
	r.removeLocked(session)
	return rooms, true
}

// removeLocked detaches a session from every index. Caller holds the lock.
func (r *Registry) removeLocked(session *Session) {
	delete(r.byID, session.ID)
	if current, ok := r.byUser[session.UserID]; ok && current.ID == session.ID {
		delete(r.byUser, session.UserID)
	}
	for room := range session.rooms {
		r.leaveLocked(session, room)
	}
}

// Join subscribes a session to a room. The room entry is initialized on
// the fly.
func (r *Registry) Join(session *Session, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[session.ID]; !ok {
		// Session already gone; never resurrect its room entries.
		return
	}
	session.rooms[room] = struct{}{}
	if _, ok := r.rooms[room]; !ok {
		r.rooms[room] = make(map[string]*Session)
	}
	r.rooms[room][session.ID] = session
}

// Leave unsubscribes a session from a room. Idempotent. Empty room entries
// are removed to prevent the map from growing over time.
func (r *Registry) Leave(session *Session, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(session, room)
}

func (r *Registry) leaveLocked(session *Session, room string) {
	delete(session.rooms, room)
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, session.ID)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

// SinksForRoom resolves every live sink currently joined to a room,
// optionally excluding one session (typing indicators must not echo back
// to their origin).
func (r *Registry) SinksForRoom(room string, excludeSessionID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil
	}
	var sinks []contract.EventSink
	for id, session := range members {
		if id == excludeSessionID {
			continue
		}
		sinks = append(sinks, session.sink)
	}
	return sinks
}

// SinkForUser returns the user's current session sink, if connected.
func (r *Registry) SinkForUser(userID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.byUser[userID]
	if !ok {
		return nil, false
	}
	return session.sink, true
}

// InRoom reports whether a session is currently joined to a room.
func (r *Registry) InRoom(sessionID, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[room]
	if !ok {
		return false
	}
	_, joined := members[sessionID]
	return joined
}

// Sizes reports the current session and room counts for observability.
func (r *Registry) Sizes() (sessions, rooms int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), len(r.rooms)
}
