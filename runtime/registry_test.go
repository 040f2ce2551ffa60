package runtime

import (
	"context"
	"testing"

	"opsroom/domain/event"

	"github.com/stretchr/testify/require"
)

type nopSink struct{}

func (nopSink) Consume(context.Context, event.Outbound) error { return nil }
func (nopSink) Close()                                        {}

func TestRegistry_LastConnectionWins(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// Given a user with a live session joined to a room
	first := NewSession("user-1", nopSink{})
	req.Nil(registry.Register(first))
	registry.Join(first, "team:alpha")

	// When the same user connects again
	second := NewSession("user-1", nopSink{})
	replaced := registry.Register(second)

	// Then the previous session is returned and fully detached
	req.NotNil(replaced)
	req.Equal(first.ID, replaced.ID)
	req.False(registry.InRoom(first.ID, "team:alpha"))

	sink, ok := registry.SinkForUser("user-1")
	req.True(ok)
	req.Equal(second.Sink(), sink)

	sessions, _ := registry.Sizes()
	req.Equal(1, sessions)
}

func TestRegistry_UnregisterReturnsRooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	session := NewSession("user-1", nopSink{})
	registry.Register(session)
	registry.Join(session, "team:alpha")
	registry.Join(session, "team:bravo")

	rooms, ok := registry.Unregister(session.ID)

	req.True(ok)
	req.ElementsMatch([]string{"team:alpha", "team:bravo"}, rooms)

	// Unregister is idempotent
	_, ok = registry.Unregister(session.ID)
	req.False(ok)

	sessions, roomCount := registry.Sizes()
	req.Zero(sessions)
	req.Zero(roomCount)
}

func TestRegistry_SinksForRoomExcludesSession(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice := NewSession("alice", nopSink{})
	bob := NewSession("bob", nopSink{})
	registry.Register(alice)
	registry.Register(bob)
	registry.Join(alice, "team:alpha")
	registry.Join(bob, "team:alpha")

	// When resolving the room excluding alice's session
	sinks := registry.SinksForRoom("team:alpha", alice.ID)

	// Then only bob's sink remains
	req.Len(sinks, 1)

	req.Len(registry.SinksForRoom("team:alpha", ""), 2)
	req.Nil(registry.SinksForRoom("team:unknown", ""))
}

func TestRegistry_LeaveCleansEmptyRooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	session := NewSession("user-1", nopSink{})
	registry.Register(session)
	registry.Join(session, "team:alpha")

	registry.Leave(session, "team:alpha")

	_, rooms := registry.Sizes()
	req.Zero(rooms)
	// Leaving twice is harmless
	registry.Leave(session, "team:alpha")
}

func TestRegistry_JoinAfterUnregisterIsNoop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	session := NewSession("user-1", nopSink{})
	registry.Register(session)
	registry.Unregister(session.ID)

	// A late join from a dead session must not resurrect room entries
	registry.Join(session, "team:alpha")

	req.False(registry.InRoom(session.ID, "team:alpha"))
	_, rooms := registry.Sizes()
	req.Zero(rooms)
}
