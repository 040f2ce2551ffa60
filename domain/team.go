package domain

import (
	"fmt"
	"time"

	"opsroom/errors"
)

type Role string

const (
	RoleLeader   Role = "leader"
	RoleMember   Role = "member"
	RoleObserver Role = "observer"
)

// MemberStatus is a team member's operational state, distinct from a
// mission's status.
type MemberStatus string

const (
	StatusSafe       MemberStatus = "safe"
	StatusNeedBackup MemberStatus = "need_backup"
	StatusInProgress MemberStatus = "in_progress"
	StatusOffline    MemberStatus = "offline"
)

type Team struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}

// Membership links a user to a team. A row is unique per (team, user) pair.
type Membership struct {
	TeamID   string
	UserID   string
	Role     Role
	Status   MemberStatus
	JoinedAt time.Time
}

func (r Role) Validate() error {
	switch r {
	case RoleLeader, RoleMember, RoleObserver:
		return nil
	}
	return fmt.Errorf("%w: unknown role %q", errors.ErrValidation, string(r))
}

func (s MemberStatus) Validate() error {
	switch s {
	case StatusSafe, StatusNeedBackup, StatusInProgress, StatusOffline:
		return nil
	}
	return fmt.Errorf("%w: unknown status %q", errors.ErrValidation, string(s))
}

// RoomName is the broadcast scope for a team. One room per team.
func RoomName(teamID string) string {
	return "team:" + teamID
}

// TeamIDFromRoom inverts RoomName. The second return is false for rooms
// that are not team-scoped.
func TeamIDFromRoom(room string) (string, bool) {
	const prefix = "team:"
	if len(room) <= len(prefix) || room[:len(prefix)] != prefix {
		return "", false
	}
	return room[len(prefix):], true
}
