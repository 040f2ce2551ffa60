package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/repositories"

	"github.com/google/uuid"
)

// Report surfaces the outcome of a fan-out. Partial success is acceptable
// and must be reported, never silently swallowed.
type Report struct {
	Delivered []string
	Failed    map[string]error
}

func (r Report) Complete() bool { return len(r.Failed) == 0 }

type INotificationFanout interface {
	NotifyTeam(ctx context.Context, teamID, actorUserID string,
		kind domain.NotificationType, title, content string) (Report, error)
	NotifyUser(ctx context.Context, userID string,
		kind domain.NotificationType, title, content string) error
}

// NotificationFanout creates persisted notification records and attempts
// live delivery per recipient. Persist-then-attempt-deliver: a missed live
// push is backed by the durable row.
type NotificationFanout struct {
	log           *slog.Logger
	notifications repositories.INotificationRepository
	memberships   repositories.IMembershipRepository
	broadcaster   Broadcaster
}

func NewNotificationFanout(log *slog.Logger,
	notifications repositories.INotificationRepository,
	memberships repositories.IMembershipRepository,
	broadcaster Broadcaster) *NotificationFanout {
	return &NotificationFanout{
		log:           log,
		notifications: notifications,
		memberships:   memberships,
		broadcaster:   broadcaster,
	}
}

// NotifyTeam resolves the team roster, excludes the actor, and creates one
// notification per remaining member. A failed insert for one recipient
// does not abort the rest of the batch; the report carries both outcomes.
func (f *NotificationFanout) NotifyTeam(ctx context.Context, teamID, actorUserID string,
	kind domain.NotificationType, title, content string) (Report, error) {
	if err := kind.Validate(); err != nil {
		return Report{}, err
	}

	roster, err := f.memberships.ListTeamMembers(teamID)
	if err != nil {
		return Report{}, fmt.Errorf("resolve roster for %s: %w", teamID, err)
	}

	report := Report{Failed: make(map[string]error)}
	for _, member := range roster {
		if member.UserID == actorUserID {
			continue
		}
		if err := f.deliver(ctx, member.UserID, kind, title, content); err != nil {
			f.log.Warn("notification fan-out failed for recipient",
				"team_id", teamID, "user_id", member.UserID, "error", err)
			report.Failed[member.UserID] = err
			continue
		}
		report.Delivered = append(report.Delivered, member.UserID)
	}
	return report, nil
}

// NotifyUser is the single-target variant with the same
// persist-then-attempt-deliver contract.
func (f *NotificationFanout) NotifyUser(ctx context.Context, userID string,
	kind domain.NotificationType, title, content string) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	return f.deliver(ctx, userID, kind, title, content)
}

func (f *NotificationFanout) deliver(_ context.Context, userID string,
	kind domain.NotificationType, title, content string) error {
	notification := domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Content:   content,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := f.notifications.CreateNotification(notification); err != nil {
		return err
	}
	// Best-effort live push once the row is durable.
	f.broadcaster.Unicast(userID, event.NotificationNew{
		Notification: event.ToNotificationPayload(notification),
	})
	return nil
}
