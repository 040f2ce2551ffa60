package services

import (
	"context"
	"fmt"
	"log/slog"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/errors"
	"opsroom/repositories"
)

type IStatusService interface {
	Update(ctx context.Context, actorID, teamID string, status domain.MemberStatus) error
}

// StatusService propagates member status changes. It also implements the
// router's disconnect listener: a closed session marks its user offline in
// every team it belonged to.
type StatusService struct {
	log         *slog.Logger
	authority   IMembershipAuthority
	memberships repositories.IMembershipRepository
	fanout      INotificationFanout
	broadcast   Broadcaster
}

func NewStatusService(log *slog.Logger, authority IMembershipAuthority,
	memberships repositories.IMembershipRepository,
	fanout INotificationFanout, broadcast Broadcaster) *StatusService {
	return &StatusService{
		log:         log,
		authority:   authority,
		memberships: memberships,
		fanout:      fanout,
		broadcast:   broadcast,
	}
}

// Update persists the new status and tells the rest of the team. Setting
// the status to its current value is still a persisted update and still
// notifies: suppressing it would hide an intentional "I am still safe".
func (s *StatusService) Update(ctx context.Context, actorID, teamID string, status domain.MemberStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	member, err := s.authority.IsMember(ctx, actorID, teamID)
	if err != nil {
		return err
	}
	if !member {
		return errors.ErrNotTeamMember
	}

	if err := s.memberships.UpdateStatus(teamID, actorID, status); err != nil {
		return fmt.Errorf("persist status: %w", err)
	}

	report, err := s.fanout.NotifyTeam(ctx, teamID, actorID, domain.NotifStatusChange,
		"Status change", fmt.Sprintf("Member status is now %s", status))
	if err != nil {
		return err
	}
	if !report.Complete() {
		s.log.Warn("status fan-out partially failed",
			"team_id", teamID, "failed", len(report.Failed))
	}

	s.broadcast.Broadcast(domain.RoomName(teamID), event.UserStatusUpdate{
		UserID: actorID,
		Status: string(status),
		TeamID: teamID,
	})
	return nil
}

// SessionClosed marks the user offline in every affected team. Best-effort:
// one team's persistence failure must not prevent attempting the others,
// and a failed persist skips that team's broadcast (persist-then-broadcast,
// never the reverse).
func (s *StatusService) SessionClosed(_ context.Context, userID string, teamIDs []string) {
	for _, teamID := range teamIDs {
		if err := s.memberships.UpdateStatus(teamID, userID, domain.StatusOffline); err != nil {
			s.log.Warn("failed to mark member offline",
				"team_id", teamID, "user_id", userID, "error", err)
			continue
		}
		s.broadcast.Broadcast(domain.RoomName(teamID), event.UserStatusUpdate{
			UserID: userID,
			Status: string(domain.StatusOffline),
			TeamID: teamID,
		})
	}
}
