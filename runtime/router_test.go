package runtime

import (
	"context"
	"log/slog"
	"testing"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/errors"

	"github.com/stretchr/testify/require"
)

type stubAuthority struct {
	members map[string]bool
}

func (s stubAuthority) IsMember(_ context.Context, userID, teamID string) (bool, error) {
	return s.members[userID+":"+teamID], nil
}

type stubTeamLister struct {
	teams map[string][]string
}

func (s stubTeamLister) ListUserTeams(userID string) ([]string, error) {
	return s.teams[userID], nil
}

type closableSink struct {
	nopSink
	closed bool
}

func (s *closableSink) Close() { s.closed = true }

type recordingListener struct {
	userID  string
	teamIDs []string
}

func (l *recordingListener) SessionClosed(_ context.Context, userID string, teamIDs []string) {
	l.userID = userID
	l.teamIDs = teamIDs
}

func newTestRouter(authority stubAuthority, lister stubTeamLister, bufferSize int) *Router {
	return NewRouter(slog.Default(), NewRegistry(), authority, lister, bufferSize)
}

func TestRouter_ConnectAutoJoinsTeamRooms(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(
		stubAuthority{},
		stubTeamLister{teams: map[string][]string{"alice": {"alpha", "bravo"}}},
		16,
	)

	// When alice connects
	session, err := router.Connect(domain.Identity{UserID: "alice"}, nopSink{})

	// Then she is joined to one room per team from the snapshot
	req.NoError(err)
	req.True(router.Registry().InRoom(session.ID, "team:alpha"))
	req.True(router.Registry().InRoom(session.ID, "team:bravo"))
}

func TestRouter_JoinRoomRejectsNonMember(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(
		stubAuthority{members: map[string]bool{"alice:alpha": true}},
		stubTeamLister{},
		16,
	)
	session, err := router.Connect(domain.Identity{UserID: "alice"}, nopSink{})
	req.NoError(err)

	// When alice joins a team she belongs to
	req.NoError(router.JoinRoom(context.Background(), session, "alpha"))
	req.True(router.Registry().InRoom(session.ID, "team:alpha"))

	// When she joins a team she does not belong to
	err = router.JoinRoom(context.Background(), session, "bravo")

	// Then the join is an authorization failure and no subscription happens
	req.ErrorIs(err, errors.ErrNotTeamMember)
	req.ErrorIs(err, errors.ErrAuthorization)
	req.False(router.Registry().InRoom(session.ID, "team:bravo"))
}

func TestRouter_BroadcastReachesOnlyRoomMembers(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(
		stubAuthority{members: map[string]bool{"alice:alpha": true}},
		stubTeamLister{},
		16,
	)
	session, err := router.Connect(domain.Identity{UserID: "alice"}, nopSink{})
	req.NoError(err)
	req.NoError(router.JoinRoom(context.Background(), session, "alpha"))

	// When events are routed to a room alice is in and one she is not
	router.Broadcast("team:alpha", event.Error{Message: "in"})
	router.Broadcast("team:bravo", event.Error{Message: "out"})

	// Then both deliveries are queued, but only the first resolves to her sink
	first := <-router.Deliveries()
	req.Equal("team:alpha", first.Room)
	req.Len(router.Registry().SinksForRoom(first.Room, first.Exclude), 1)

	second := <-router.Deliveries()
	req.Equal("team:bravo", second.Room)
	req.Empty(router.Registry().SinksForRoom(second.Room, second.Exclude))
}

func TestRouter_DisconnectNotifiesListenerWithTeamIDs(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(
		stubAuthority{},
		stubTeamLister{teams: map[string][]string{"alice": {"alpha", "bravo"}}},
		16,
	)
	listener := &recordingListener{}
	router.SetDisconnectListener(listener)

	session, err := router.Connect(domain.Identity{UserID: "alice"}, nopSink{})
	req.NoError(err)

	// When the session disconnects
	router.Disconnect(context.Background(), session)

	// Then the listener gets the user and the affected team IDs, not rooms
	req.Equal("alice", listener.userID)
	req.ElementsMatch([]string{"alpha", "bravo"}, listener.teamIDs)

	// A second disconnect for the same session is swallowed
	listener.userID = ""
	router.Disconnect(context.Background(), session)
	req.Empty(listener.userID)
}

func TestRouter_DisconnectCascadeCoversLeftRooms(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(
		stubAuthority{},
		stubTeamLister{teams: map[string][]string{"carol": {"alpha", "bravo"}}},
		16,
	)
	listener := &recordingListener{}
	router.SetDisconnectListener(listener)

	session, err := router.Connect(domain.Identity{UserID: "carol"}, nopSink{})
	req.NoError(err)

	// Given carol left the alpha room but still belongs to the team
	router.LeaveRoom(session, "alpha")

	// When her session disconnects
	router.Disconnect(context.Background(), session)

	// Then the cascade covers every team she belongs to, not just the
	// rooms she was still joined to
	req.ElementsMatch([]string{"alpha", "bravo"}, listener.teamIDs)
}

func TestRouter_ConnectClosesSupersededSession(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(stubAuthority{}, stubTeamLister{}, 16)

	first := &closableSink{}
	_, err := router.Connect(domain.Identity{UserID: "alice"}, first)
	req.NoError(err)

	// When the same user connects again
	second := &closableSink{}
	_, err = router.Connect(domain.Identity{UserID: "alice"}, second)
	req.NoError(err)

	// Then the stale sink is released and the new one stays live
	req.True(first.closed)
	req.False(second.closed)
}

func TestRouter_DispatchDropsWhenBufferFull(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(stubAuthority{}, stubTeamLister{}, 1)

	// Given a full delivery channel
	router.Broadcast("team:alpha", event.Error{Message: "first"})

	// When more events arrive than the buffer holds
	router.Broadcast("team:alpha", event.Error{Message: "second"})

	// Then the overflow is dropped, never blocking the caller
	req.Len(router.Deliveries(), 1)
}
