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

type statusServiceFixture struct {
	memberships   *mocks.MockIMembershipRepository
	notifications *mocks.MockINotificationRepository
	broadcaster   *mocks.MockBroadcaster
	svc           *StatusService
}

func newStatusServiceFixture(t *testing.T) statusServiceFixture {
	ctrl := gomock.NewController(t)
	memberships := mocks.NewMockIMembershipRepository(ctrl)
	notifications := mocks.NewMockINotificationRepository(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	fanout := NewNotificationFanout(slog.Default(), notifications, memberships, broadcaster)
	svc := NewStatusService(slog.Default(), NewMembershipAuthority(memberships),
		memberships, fanout, broadcaster)
	return statusServiceFixture{
		memberships:   memberships,
		notifications: notifications,
		broadcaster:   broadcaster,
		svc:           svc,
	}
}

func TestStatusService_UpdateNotifiesTeamAndBroadcasts(t *testing.T) {
	req := require.New(t)
	f := newStatusServiceFixture(t)

	f.memberships.EXPECT().
		GetMembership("alpha", "alice").
		Return(domain.Membership{TeamID: "alpha", UserID: "alice", Status: domain.StatusSafe}, nil).
		Times(1)
	f.memberships.EXPECT().
		UpdateStatus("alpha", "alice", domain.StatusNeedBackup).
		Return(nil).
		Times(1)
	f.memberships.EXPECT().
		ListTeamMembers("alpha").
		Return([]domain.Membership{
			{TeamID: "alpha", UserID: "alice"},
			{TeamID: "alpha", UserID: "bob"},
		}, nil).
		Times(1)

	// bob gets a durable row plus a live push; alice is the actor and gets
	// neither
	f.notifications.EXPECT().
		CreateNotification(gomock.Any()).
		Do(func(n domain.Notification) {
			require.Equal(t, "bob", n.UserID)
			require.Equal(t, domain.NotifStatusChange, n.Type)
		}).
		Return(nil).
		Times(1)
	f.broadcaster.EXPECT().Unicast("bob", gomock.Any()).Times(1)
	f.broadcaster.EXPECT().Broadcast("team:alpha", gomock.Any()).Times(1)

	req.NoError(f.svc.Update(context.Background(), "alice", "alpha", domain.StatusNeedBackup))
}

func TestStatusService_SameValueStillPersistsAndNotifies(t *testing.T) {
	req := require.New(t)
	f := newStatusServiceFixture(t)

	// alice is already safe and reports safe again: the write and the
	// fan-out must still happen
	f.memberships.EXPECT().
		GetMembership("alpha", "alice").
		Return(domain.Membership{TeamID: "alpha", UserID: "alice", Status: domain.StatusSafe}, nil).
		Times(1)
	f.memberships.EXPECT().
		UpdateStatus("alpha", "alice", domain.StatusSafe).
		Return(nil).
		Times(1)
	f.memberships.EXPECT().
		ListTeamMembers("alpha").
		Return([]domain.Membership{{TeamID: "alpha", UserID: "alice"}}, nil).
		Times(1)
	f.broadcaster.EXPECT().Broadcast("team:alpha", gomock.Any()).Times(1)

	req.NoError(f.svc.Update(context.Background(), "alice", "alpha", domain.StatusSafe))
}

func TestStatusService_UpdateRejectsNonMember(t *testing.T) {
	req := require.New(t)
	f := newStatusServiceFixture(t)

	f.memberships.EXPECT().
		GetMembership("alpha", "mallory").
		Return(domain.Membership{}, errors.ErrNotFound).
		Times(1)

	err := f.svc.Update(context.Background(), "mallory", "alpha", domain.StatusSafe)

	req.ErrorIs(err, errors.ErrNotTeamMember)
}

func TestStatusService_UpdateRejectsUnknownStatus(t *testing.T) {
	req := require.New(t)
	f := newStatusServiceFixture(t)

	err := f.svc.Update(context.Background(), "alice", "alpha", domain.MemberStatus("vaporized"))

	req.ErrorIs(err, errors.ErrValidation)
}

func TestStatusService_SessionClosedCascadesPerTeam(t *testing.T) {
	f := newStatusServiceFixture(t)

	// alpha persists and broadcasts; bravo's persist fails, so bravo gets
	// no broadcast but the cascade keeps going
	f.memberships.EXPECT().
		UpdateStatus("alpha", "alice", domain.StatusOffline).
		Return(nil).
		Times(1)
	f.broadcaster.EXPECT().Broadcast("team:alpha", gomock.Any()).Times(1)

	f.memberships.EXPECT().
		UpdateStatus("bravo", "alice", domain.StatusOffline).
		Return(errors.ErrNotFound).
		Times(1)

	f.memberships.EXPECT().
		UpdateStatus("charlie", "alice", domain.StatusOffline).
		Return(nil).
		Times(1)
	f.broadcaster.EXPECT().Broadcast("team:charlie", gomock.Any()).Times(1)

	f.svc.SessionClosed(context.Background(), "alice", []string{"alpha", "bravo", "charlie"})
}
