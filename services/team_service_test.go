package services

import (
	"context"
	"log/slog"
	"testing"

	"opsroom/domain"
	"opsroom/errors"
	"opsroom/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type teamServiceFixture struct {
	teams         *mocks.MockITeamRepository
	memberships   *mocks.MockIMembershipRepository
	notifications *mocks.MockINotificationRepository
	broadcaster   *mocks.MockBroadcaster
	svc           *TeamService
}

func newTeamServiceFixture(t *testing.T) teamServiceFixture {
	ctrl := gomock.NewController(t)
	teams := mocks.NewMockITeamRepository(ctrl)
	memberships := mocks.NewMockIMembershipRepository(ctrl)
	notifications := mocks.NewMockINotificationRepository(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	fanout := NewNotificationFanout(slog.Default(), notifications, memberships, broadcaster)
	svc := NewTeamService(slog.Default(), NewMembershipAuthority(memberships),
		teams, memberships, fanout, broadcaster)
	return teamServiceFixture{
		teams:         teams,
		memberships:   memberships,
		notifications: notifications,
		broadcaster:   broadcaster,
		svc:           svc,
	}
}

func TestTeamService_CreateInsertsLeaderMembership(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	var createdTeam domain.Team
	f.teams.EXPECT().
		CreateTeam(gomock.Any()).
		Do(func(team domain.Team) { createdTeam = team }).
		Return(nil).
		Times(1)

	// The creator becomes the leader of the team that was just persisted
	f.memberships.EXPECT().
		CreateMembership(gomock.Any()).
		Do(func(m domain.Membership) {
			require.Equal(t, createdTeam.ID, m.TeamID)
			require.Equal(t, "alice", m.UserID)
			require.Equal(t, domain.RoleLeader, m.Role)
		}).
		Return(nil).
		Times(1)

	team, err := f.svc.Create(context.Background(), "alice", "Alpha Squad", "night ops")

	req.NoError(err)
	req.NotEmpty(team.ID)
	req.Equal("alice", team.CreatedBy)
}

func TestTeamService_CreateCompensatesOnMembershipFailure(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	var createdID string
	f.teams.EXPECT().
		CreateTeam(gomock.Any()).
		Do(func(team domain.Team) { createdID = team.ID }).
		Return(nil).
		Times(1)
	f.memberships.EXPECT().
		CreateMembership(gomock.Any()).
		Return(errors.ErrConflict).
		Times(1)

	// Then the orphaned team row is deleted
	f.teams.EXPECT().
		DeleteTeam(gomock.Any()).
		Do(func(id string) { require.Equal(t, createdID, id) }).
		Return(nil).
		Times(1)

	_, err := f.svc.Create(context.Background(), "alice", "Alpha Squad", "")

	req.ErrorIs(err, errors.ErrConflict)
}

func TestTeamService_CreateRejectsEmptyName(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	// Nothing is persisted
	_, err := f.svc.Create(context.Background(), "alice", "", "")

	req.ErrorIs(err, errors.ErrValidation)
}

func TestTeamService_AddMemberRequiresLeader(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	// Given bob is a plain member
	f.memberships.EXPECT().
		GetMembership("alpha", "bob").
		Return(domain.Membership{TeamID: "alpha", UserID: "bob", Role: domain.RoleMember}, nil).
		Times(1)

	_, err := f.svc.AddMember(context.Background(), "bob", "alpha", "carol", domain.RoleMember)

	req.ErrorIs(err, errors.ErrNotTeamLeader)
	req.ErrorIs(err, errors.ErrAuthorization)
}

func TestTeamService_AddMemberNotifiesAndBroadcasts(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	f.memberships.EXPECT().
		GetMembership("alpha", "alice").
		Return(domain.Membership{TeamID: "alpha", UserID: "alice", Role: domain.RoleLeader}, nil).
		Times(1)
	f.teams.EXPECT().
		GetTeam("alpha").
		Return(domain.Team{ID: "alpha", Name: "Alpha Squad"}, nil).
		Times(1)
	f.memberships.EXPECT().
		CreateMembership(gomock.Any()).
		Do(func(m domain.Membership) {
			require.Equal(t, "carol", m.UserID)
			require.Equal(t, domain.RoleMember, m.Role)
			require.Equal(t, domain.StatusSafe, m.Status)
		}).
		Return(nil).
		Times(1)

	// The new member is personally notified, the room learns about it.
	// Notification row first, live push after.
	f.notifications.EXPECT().
		CreateNotification(gomock.Any()).
		Do(func(n domain.Notification) {
			require.Equal(t, "carol", n.UserID)
			require.Equal(t, domain.NotifAlert, n.Type)
		}).
		Return(nil).
		Times(1)
	f.broadcaster.EXPECT().Unicast("carol", gomock.Any()).Times(1)
	f.broadcaster.EXPECT().Broadcast("team:alpha", gomock.Any()).Times(1)

	membership, err := f.svc.AddMember(context.Background(), "alice", "alpha", "carol", "")

	req.NoError(err)
	req.Equal(domain.RoleMember, membership.Role)
}

func TestTeamService_RemoveLastLeaderRejected(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	// Given alice is the only leader and removes herself
	f.memberships.EXPECT().
		GetMembership("alpha", "alice").
		Return(domain.Membership{TeamID: "alpha", UserID: "alice", Role: domain.RoleLeader}, nil).
		Times(1)
	f.memberships.EXPECT().
		CountLeaders("alpha").
		Return(1, nil).
		Times(1)

	err := f.svc.RemoveMember(context.Background(), "alice", "alpha", "alice")

	// Then the removal is a conflict and no row is deleted
	req.ErrorIs(err, errors.ErrLastLeader)
	req.ErrorIs(err, errors.ErrConflict)
}

func TestTeamService_RemoveLeaderSucceedsWithAnotherLeader(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	f.memberships.EXPECT().
		GetMembership("alpha", "alice").
		Return(domain.Membership{TeamID: "alpha", UserID: "alice", Role: domain.RoleLeader}, nil).
		Times(1)
	f.memberships.EXPECT().
		CountLeaders("alpha").
		Return(2, nil).
		Times(1)
	f.memberships.EXPECT().
		DeleteMembership("alpha", "alice").
		Return(nil).
		Times(1)
	f.broadcaster.EXPECT().Broadcast("team:alpha", gomock.Any()).Times(1)

	req.NoError(f.svc.RemoveMember(context.Background(), "alice", "alpha", "alice"))
}

func TestTeamService_MemberCanRemoveSelfOnly(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	// Given bob is a plain member trying to remove carol
	f.memberships.EXPECT().
		GetMembership("alpha", "bob").
		Return(domain.Membership{TeamID: "alpha", UserID: "bob", Role: domain.RoleMember}, nil).
		Times(1)

	err := f.svc.RemoveMember(context.Background(), "bob", "alpha", "carol")

	req.ErrorIs(err, errors.ErrNotTeamLeader)
}

func TestTeamService_DemoteLastLeaderRejected(t *testing.T) {
	req := require.New(t)
	f := newTeamServiceFixture(t)

	// GetMembership is hit twice: once by the leader gate, once for the target
	f.memberships.EXPECT().
		GetMembership("alpha", "alice").
		Return(domain.Membership{TeamID: "alpha", UserID: "alice", Role: domain.RoleLeader}, nil).
		Times(2)
	f.memberships.EXPECT().
		CountLeaders("alpha").
		Return(1, nil).
		Times(1)

	err := f.svc.ChangeRole(context.Background(), "alice", "alpha", "alice", domain.RoleMember)

	req.ErrorIs(err, errors.ErrLastLeader)
}
