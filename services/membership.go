// Package services implements the domain use cases on top of the record
// store and the realtime router. Every use case follows the same shape:
// authorize, transform, persist, fan out notifications, broadcast.
package services

import (
	"context"
	stderrors "errors"

	"opsroom/domain"
	"opsroom/errors"
	"opsroom/repositories"
)

// IMembershipAuthority is the authorization gate consulted by every
// mutating or team-scoped operation.
type IMembershipAuthority interface {
	IsMember(ctx context.Context, userID, teamID string) (bool, error)
	IsLeader(ctx context.Context, userID, teamID string) (bool, error)
}

type MembershipAuthority struct {
	memberships repositories.IMembershipRepository
}

func NewMembershipAuthority(memberships repositories.IMembershipRepository) *MembershipAuthority {
	return &MembershipAuthority{memberships: memberships}
}

// IsMember answers whether the user belongs to the team. A missing row is
// false, never an error.
func (a *MembershipAuthority) IsMember(_ context.Context, userID, teamID string) (bool, error) {
	_, err := a.memberships.GetMembership(teamID, userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsLeader answers whether the user leads the team. A missing row is
// false, never an error.
func (a *MembershipAuthority) IsLeader(_ context.Context, userID, teamID string) (bool, error) {
	membership, err := a.memberships.GetMembership(teamID, userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return membership.Role == domain.RoleLeader, nil
}
