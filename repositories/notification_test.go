package repositories

import (
	"testing"
	"time"

	"opsroom/domain"
	"opsroom/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func notificationFixture(userID string, at time.Time) domain.Notification {
	return domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      domain.NotifMessage,
		Title:     "New message",
		CreatedAt: at,
	}
}

func TestNotificationRepository_ListNewestFirstWithLimit(t *testing.T) {
	req := require.New(t)
	repo := NewNotificationRepository(newTestDB(t))

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		req.NoError(repo.CreateNotification(notificationFixture("alice", base.Add(time.Duration(i)*time.Second))))
	}
	req.NoError(repo.CreateNotification(notificationFixture("bob", base)))

	notifications, err := repo.ListNotifications("alice", 3)

	req.NoError(err)
	req.Len(notifications, 3)
	req.True(notifications[0].CreatedAt.After(notifications[1].CreatedAt))
	req.True(notifications[1].CreatedAt.After(notifications[2].CreatedAt))
	for _, n := range notifications {
		req.Equal("alice", n.UserID)
	}
}

func TestNotificationRepository_MarkReadAndCount(t *testing.T) {
	req := require.New(t)
	repo := NewNotificationRepository(newTestDB(t))

	first := notificationFixture("alice", time.Now().UTC())
	second := notificationFixture("alice", time.Now().UTC().Add(time.Second))
	req.NoError(repo.CreateNotification(first))
	req.NoError(repo.CreateNotification(second))

	count, err := repo.CountUnread("alice")
	req.NoError(err)
	req.Equal(2, count)

	// When one is marked read
	req.NoError(repo.MarkRead("alice", first.ID.String()))

	count, err = repo.CountUnread("alice")
	req.NoError(err)
	req.Equal(1, count)

	// Marking an unknown id, or someone else's row, is a not-found
	req.ErrorIs(repo.MarkRead("alice", uuid.NewString()), errors.ErrNotFound)
	req.ErrorIs(repo.MarkRead("bob", first.ID.String()), errors.ErrNotFound)
}
