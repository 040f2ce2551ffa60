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

func TestNotificationFanout_TeamRosterMinusActor(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifications := mocks.NewMockINotificationRepository(ctrl)
	memberships := mocks.NewMockIMembershipRepository(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	fanout := NewNotificationFanout(slog.Default(), notifications, memberships, broadcaster)

	memberships.EXPECT().
		ListTeamMembers("alpha").
		Return([]domain.Membership{
			{TeamID: "alpha", UserID: "alice"},
			{TeamID: "alpha", UserID: "bob"},
			{TeamID: "alpha", UserID: "carol"},
		}, nil).
		Times(1)

	var recipients []string
	notifications.EXPECT().
		CreateNotification(gomock.Any()).
		Do(func(n domain.Notification) { recipients = append(recipients, n.UserID) }).
		Return(nil).
		Times(2)
	broadcaster.EXPECT().Unicast("bob", gomock.Any()).Times(1)
	broadcaster.EXPECT().Unicast("carol", gomock.Any()).Times(1)

	report, err := fanout.NotifyTeam(context.Background(), "alpha", "alice",
		domain.NotifMessage, "New message", "")

	req.NoError(err)
	req.True(report.Complete())
	req.ElementsMatch([]string{"bob", "carol"}, report.Delivered)
	req.NotContains(recipients, "alice")
}

func TestNotificationFanout_PartialFailureKeepsGoing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifications := mocks.NewMockINotificationRepository(ctrl)
	memberships := mocks.NewMockIMembershipRepository(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	fanout := NewNotificationFanout(slog.Default(), notifications, memberships, broadcaster)

	memberships.EXPECT().
		ListTeamMembers("alpha").
		Return([]domain.Membership{
			{TeamID: "alpha", UserID: "bob"},
			{TeamID: "alpha", UserID: "carol"},
		}, nil).
		Times(1)

	// bob's insert fails: no live push for bob, carol still gets hers
	notifications.EXPECT().
		CreateNotification(gomock.Any()).
		DoAndReturn(func(n domain.Notification) error {
			if n.UserID == "bob" {
				return errors.ErrConflict
			}
			return nil
		}).
		Times(2)
	broadcaster.EXPECT().Unicast("carol", gomock.Any()).Times(1)

	report, err := fanout.NotifyTeam(context.Background(), "alpha", "alice",
		domain.NotifAlert, "Heads up", "")

	req.NoError(err)
	req.False(report.Complete())
	req.Equal([]string{"carol"}, report.Delivered)
	req.ErrorIs(report.Failed["bob"], errors.ErrConflict)
}

func TestNotificationFanout_RosterFailureIsAnError(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifications := mocks.NewMockINotificationRepository(ctrl)
	memberships := mocks.NewMockIMembershipRepository(ctrl)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	fanout := NewNotificationFanout(slog.Default(), notifications, memberships, broadcaster)

	memberships.EXPECT().
		ListTeamMembers("alpha").
		Return(nil, errors.ErrNotFound).
		Times(1)

	_, err := fanout.NotifyTeam(context.Background(), "alpha", "alice",
		domain.NotifMessage, "New message", "")

	req.ErrorIs(err, errors.ErrNotFound)
}

func TestNotificationFanout_RejectsUnknownKind(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	fanout := NewNotificationFanout(slog.Default(),
		mocks.NewMockINotificationRepository(ctrl),
		mocks.NewMockIMembershipRepository(ctrl),
		mocks.NewMockBroadcaster(ctrl))

	_, err := fanout.NotifyTeam(context.Background(), "alpha", "alice",
		domain.NotificationType("carrier-pigeon"), "x", "")

	req.ErrorIs(err, errors.ErrValidation)
}
