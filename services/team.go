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

type ITeamService interface {
	Create(ctx context.Context, creatorID, name, description string) (domain.Team, error)
	Get(ctx context.Context, actorID, teamID string) (domain.Team, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Team, error)
	Members(ctx context.Context, actorID, teamID string) ([]domain.Membership, error)
	AddMember(ctx context.Context, actorID, teamID, userID string, role domain.Role) (domain.Membership, error)
	RemoveMember(ctx context.Context, actorID, teamID, userID string) error
	ChangeRole(ctx context.Context, actorID, teamID, userID string, role domain.Role) error
}

type TeamService struct {
	log         *slog.Logger
	authority   IMembershipAuthority
	teams       repositories.ITeamRepository
	memberships repositories.IMembershipRepository
	fanout      INotificationFanout
	broadcast   Broadcaster
}

func NewTeamService(log *slog.Logger, authority IMembershipAuthority,
	teams repositories.ITeamRepository, memberships repositories.IMembershipRepository,
	fanout INotificationFanout, broadcast Broadcaster) *TeamService {
	return &TeamService{
		log:         log,
		authority:   authority,
		teams:       teams,
		memberships: memberships,
		fanout:      fanout,
		broadcast:   broadcast,
	}
}

// Create persists the team row and the creator's leader membership as one
// logical operation. A failed membership insert compensates by deleting
// the just-created team row: a team with no leader is an invalid state the
// rest of the system cannot recover from.
func (s *TeamService) Create(ctx context.Context, creatorID, name, description string) (domain.Team, error) {
	if name == "" {
		return domain.Team{}, fmt.Errorf("%w: team name is required", errors.ErrValidation)
	}

	team := domain.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.teams.CreateTeam(team); err != nil {
		return domain.Team{}, fmt.Errorf("persist team: %w", err)
	}

	membership := domain.Membership{
		TeamID:   team.ID,
		UserID:   creatorID,
		Role:     domain.RoleLeader,
		Status:   domain.StatusSafe,
		JoinedAt: team.CreatedAt,
	}
	if err := s.memberships.CreateMembership(membership); err != nil {
		if rollbackErr := s.teams.DeleteTeam(team.ID); rollbackErr != nil {
			s.log.Error("team compensation failed, orphaned team row left behind",
				"team_id", team.ID, "error", rollbackErr)
		}
		return domain.Team{}, fmt.Errorf("persist leader membership: %w", err)
	}
	return team, nil
}

func (s *TeamService) Get(ctx context.Context, actorID, teamID string) (domain.Team, error) {
	member, err := s.authority.IsMember(ctx, actorID, teamID)
	if err != nil {
		return domain.Team{}, err
	}
	if !member {
		return domain.Team{}, errors.ErrNotTeamMember
	}
	return s.teams.GetTeam(teamID)
}

func (s *TeamService) ListForUser(_ context.Context, userID string) ([]domain.Team, error) {
	teamIDs, err := s.memberships.ListUserTeams(userID)
	if err != nil {
		return nil, err
	}
	teams := make([]domain.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		team, err := s.teams.GetTeam(id)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (s *TeamService) Members(ctx context.Context, actorID, teamID string) ([]domain.Membership, error) {
	member, err := s.authority.IsMember(ctx, actorID, teamID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.ErrNotTeamMember
	}
	return s.memberships.ListTeamMembers(teamID)
}

// AddMember is leader-only. The new member gets a personal notification
// and the room learns about the roster change.
func (s *TeamService) AddMember(ctx context.Context, actorID, teamID, userID string, role domain.Role) (domain.Membership, error) {
	if role == "" {
		role = domain.RoleMember
	}
	if err := role.Validate(); err != nil {
		return domain.Membership{}, err
	}

	leader, err := s.authority.IsLeader(ctx, actorID, teamID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !leader {
		return domain.Membership{}, errors.ErrNotTeamLeader
	}

	team, err := s.teams.GetTeam(teamID)
	if err != nil {
		return domain.Membership{}, err
	}

	membership := domain.Membership{
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		Status:   domain.StatusSafe,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.memberships.CreateMembership(membership); err != nil {
		return domain.Membership{}, err
	}

	if err := s.fanout.NotifyUser(ctx, userID, domain.NotifAlert,
		"Added to team", team.Name); err != nil {
		s.log.Warn("failed to notify added member",
			"team_id", teamID, "user_id", userID, "error", err)
	}

	s.broadcast.Broadcast(domain.RoomName(teamID), event.TeamMemberJoined{
		Member: event.ToMemberPayload(membership),
		TeamID: teamID,
	})
	return membership, nil
}

// RemoveMember allows a leader to remove anyone, and any member to remove
// themself. Removing the last remaining leader is rejected until another
// leader is promoted first. No notification fan-out for removals; the room
// broadcast is enough.
func (s *TeamService) RemoveMember(ctx context.Context, actorID, teamID, userID string) error {
	if actorID != userID {
		leader, err := s.authority.IsLeader(ctx, actorID, teamID)
		if err != nil {
			return err
		}
		if !leader {
			return errors.ErrNotTeamLeader
		}
	}

	target, err := s.memberships.GetMembership(teamID, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleLeader {
		if err := s.ensureNotLastLeader(teamID); err != nil {
			return err
		}
	}

	if err := s.memberships.DeleteMembership(teamID, userID); err != nil {
		return err
	}

	s.broadcast.Broadcast(domain.RoomName(teamID), event.TeamMemberLeft{
		UserID: userID,
		TeamID: teamID,
	})
	return nil
}

// ChangeRole is leader-only. Demoting a leader applies the same last-leader
// guard as removal.
func (s *TeamService) ChangeRole(ctx context.Context, actorID, teamID, userID string, role domain.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	leader, err := s.authority.IsLeader(ctx, actorID, teamID)
	if err != nil {
		return err
	}
	if !leader {
		return errors.ErrNotTeamLeader
	}

	target, err := s.memberships.GetMembership(teamID, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleLeader && role != domain.RoleLeader {
		if err := s.ensureNotLastLeader(teamID); err != nil {
			return err
		}
	}
	return s.memberships.UpdateRole(teamID, userID, role)
}

func (s *TeamService) ensureNotLastLeader(teamID string) error {
	leaders, err := s.memberships.CountLeaders(teamID)
	if err != nil {
		return err
	}
	if leaders <= 1 {
		return errors.ErrLastLeader
	}
	return nil
}
