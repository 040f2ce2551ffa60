package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/errors"
	"opsroom/repositories"

	"github.com/google/uuid"
)

type CreateMissionCommand struct {
	TeamID      string
	Title       string
	Description string
	Priority    domain.MissionPriority
}

type IMissionService interface {
	Create(ctx context.Context, actorID string, cmd CreateMissionCommand) (domain.Mission, error)
	Update(ctx context.Context, actorID, missionID string, update domain.MissionUpdate) (domain.Mission, error)
	ListForTeam(ctx context.Context, actorID, teamID string) ([]domain.Mission, error)
}

// MissionService manages mission records. Mutations are leader-only.
type MissionService struct {
	log       *slog.Logger
	authority IMembershipAuthority
	missions  repositories.IMissionRepository
	fanout    INotificationFanout
	broadcast Broadcaster
}

func NewMissionService(log *slog.Logger, authority IMembershipAuthority,
	missions repositories.IMissionRepository, fanout INotificationFanout,
	broadcast Broadcaster) *MissionService {
	return &MissionService{
		log:       log,
		authority: authority,
		missions:  missions,
		fanout:    fanout,
		broadcast: broadcast,
	}
}

// Create persists a new mission in planned state, notifies the team and
// broadcasts the details to the team room.
func (s *MissionService) Create(ctx context.Context, actorID string, cmd CreateMissionCommand) (domain.Mission, error) {
	if cmd.Title == "" {
		return domain.Mission{}, fmt.Errorf("%w: mission title is required", errors.ErrValidation)
	}
	if cmd.Priority == "" {
		cmd.Priority = domain.PriorityMedium
	}
	if err := cmd.Priority.Validate(); err != nil {
		return domain.Mission{}, err
	}

	leader, err := s.authority.IsLeader(ctx, actorID, cmd.TeamID)
	if err != nil {
		return domain.Mission{}, err
	}
	if !leader {
		return domain.Mission{}, errors.ErrNotTeamLeader
	}

	now := time.Now().UTC()
	mission := domain.Mission{
		ID:          uuid.NewString(),
		TeamID:      cmd.TeamID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Status:      domain.MissionPlanned,
		Priority:    cmd.Priority,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.missions.CreateMission(mission); err != nil {
		return domain.Mission{}, fmt.Errorf("persist mission: %w", err)
	}

	report, err := s.fanout.NotifyTeam(ctx, cmd.TeamID, actorID,
		domain.NotifMissionUpdate, "New mission", mission.Title)
	if err != nil {
		return domain.Mission{}, err
	}
	if !report.Complete() {
		s.log.Warn("mission fan-out partially failed",
			"team_id", cmd.TeamID, "failed", len(report.Failed))
	}

	s.broadcastMission(mission)
	return mission, nil
}

// Update applies the changed fields. The team is notified only when the
// status changed; the room broadcast always carries the fresh details.
func (s *MissionService) Update(ctx context.Context, actorID, missionID string, update domain.MissionUpdate) (domain.Mission, error) {
	mission, err := s.missions.GetMission(missionID)
	if err != nil {
		return domain.Mission{}, err
	}

	leader, err := s.authority.IsLeader(ctx, actorID, mission.TeamID)
	if err != nil {
		return domain.Mission{}, err
	}
	if !leader {
		return domain.Mission{}, errors.ErrNotTeamLeader
	}

	statusChanged := false
	if update.Title != nil {
		mission.Title = *update.Title
	}
	if update.Description != nil {
		mission.Description = *update.Description
	}
	if update.Status != nil {
		if err := update.Status.Validate(); err != nil {
			return domain.Mission{}, err
		}
		statusChanged = mission.Status != *update.Status
		mission.Status = *update.Status
	}
	if update.Priority != nil {
		if err := update.Priority.Validate(); err != nil {
			return domain.Mission{}, err
		}
		mission.Priority = *update.Priority
	}
	mission.UpdatedAt = time.Now().UTC()

	if err := s.missions.UpdateMission(mission); err != nil {
		return domain.Mission{}, fmt.Errorf("persist mission update: %w", err)
	}

	if statusChanged {
		report, err := s.fanout.NotifyTeam(ctx, mission.TeamID, actorID,
			domain.NotifMissionUpdate, "Mission update",
			fmt.Sprintf("%s is now %s", mission.Title, mission.Status))
		if err != nil {
			return domain.Mission{}, err
		}
		if !report.Complete() {
			s.log.Warn("mission fan-out partially failed",
				"team_id", mission.TeamID, "failed", len(report.Failed))
		}
	}

	s.broadcastMission(mission)
	return mission, nil
}

func (s *MissionService) ListForTeam(ctx context.Context, actorID, teamID string) ([]domain.Mission, error) {
	member, err := s.authority.IsMember(ctx, actorID, teamID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.ErrNotTeamMember
	}
	return s.missions.ListTeamMissions(teamID)
}

func (s *MissionService) broadcastMission(mission domain.Mission) {
	s.broadcast.Broadcast(domain.RoomName(mission.TeamID), event.MissionStatusUpdate{
		Mission: event.ToMissionPayload(mission),
		TeamID:  mission.TeamID,
	})
}
