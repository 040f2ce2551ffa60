package repositories

import (
	"testing"
	"time"

	"opsroom/domain"
	"opsroom/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func membershipFixture(teamID, userID string, role domain.Role) domain.Membership {
	return domain.Membership{
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		Status:   domain.StatusSafe,
		JoinedAt: time.Now().UTC(),
	}
}

func TestMembershipRepository_CreateAndGet(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(newTestDB(t))

	// Given a stored membership
	req.NoError(repo.CreateMembership(membershipFixture("alpha", "alice", domain.RoleLeader)))

	// When reading it back
	stored, err := repo.GetMembership("alpha", "alice")

	req.NoError(err)
	req.Equal(domain.RoleLeader, stored.Role)
	req.Equal(domain.StatusSafe, stored.Status)

	// And an absent pair is a not-found, usable with errors.Is
	_, err = repo.GetMembership("alpha", "nobody")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestMembershipRepository_DuplicateIsConflict(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(newTestDB(t))

	req.NoError(repo.CreateMembership(membershipFixture("alpha", "alice", domain.RoleMember)))

	// When inserting the same (team, user) pair again
	err := repo.CreateMembership(membershipFixture("alpha", "alice", domain.RoleLeader))

	// Then the original row survives untouched
	req.ErrorIs(err, errors.ErrConflict)
	stored, getErr := repo.GetMembership("alpha", "alice")
	req.NoError(getErr)
	req.Equal(domain.RoleMember, stored.Role)
}

func TestMembershipRepository_ListUserTeamsMirror(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(newTestDB(t))

	req.NoError(repo.CreateMembership(membershipFixture("alpha", "alice", domain.RoleMember)))
	req.NoError(repo.CreateMembership(membershipFixture("bravo", "alice", domain.RoleMember)))
	req.NoError(repo.CreateMembership(membershipFixture("alpha", "bob", domain.RoleMember)))

	teams, err := repo.ListUserTeams("alice")
	req.NoError(err)
	req.ElementsMatch([]string{"alpha", "bravo"}, teams)

	members, err := repo.ListTeamMembers("alpha")
	req.NoError(err)
	req.Len(members, 2)

	// When alice leaves alpha, both the row and the mirror disappear
	req.NoError(repo.DeleteMembership("alpha", "alice"))
	teams, err = repo.ListUserTeams("alice")
	req.NoError(err)
	req.Equal([]string{"bravo"}, teams)
}

func TestMembershipRepository_UpdateStatusSameValue(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(newTestDB(t))

	req.NoError(repo.CreateMembership(membershipFixture("alpha", "alice", domain.RoleMember)))

	// Re-asserting the current status is a valid write, not an error
	req.NoError(repo.UpdateStatus("alpha", "alice", domain.StatusSafe))
	req.NoError(repo.UpdateStatus("alpha", "alice", domain.StatusNeedBackup))

	stored, err := repo.GetMembership("alpha", "alice")
	req.NoError(err)
	req.Equal(domain.StatusNeedBackup, stored.Status)

	// Updating an absent row is a not-found
	req.ErrorIs(repo.UpdateStatus("alpha", "nobody", domain.StatusSafe), errors.ErrNotFound)
}

func TestMembershipRepository_CountLeaders(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(newTestDB(t))

	req.NoError(repo.CreateMembership(membershipFixture("alpha", "alice", domain.RoleLeader)))
	req.NoError(repo.CreateMembership(membershipFixture("alpha", "bob", domain.RoleMember)))

	count, err := repo.CountLeaders("alpha")
	req.NoError(err)
	req.Equal(1, count)

	// Promoting bob makes two
	req.NoError(repo.UpdateRole("alpha", "bob", domain.RoleLeader))
	count, err = repo.CountLeaders("alpha")
	req.NoError(err)
	req.Equal(2, count)
}
