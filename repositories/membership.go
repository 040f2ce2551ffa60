//go:generate go run go.uber.org/mock/mockgen -source=membership.go -destination=../mocks/mock_membership_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"opsroom/domain"
	"opsroom/errors"

	"github.com/dgraph-io/badger/v4"
)

type IMembershipRepository interface {
	CreateMembership(m domain.Membership) error
	GetMembership(teamID, userID string) (domain.Membership, error)
	ListTeamMembers(teamID string) ([]domain.Membership, error)
	ListUserTeams(userID string) ([]string, error)
	UpdateStatus(teamID, userID string, status domain.MemberStatus) error
	UpdateRole(teamID, userID string, role domain.Role) error
	DeleteMembership(teamID, userID string) error
	CountLeaders(teamID string) (int, error)
}

type MembershipRepository struct {
	db *badger.DB
}

func NewMembershipRepository(db *badger.DB) IMembershipRepository {
	return &MembershipRepository{db: db}
}

type membershipRecord struct {
	TeamID   string `cbor:"1,keyasint"`
	UserID   string `cbor:"2,keyasint"`
	Role     string `cbor:"3,keyasint"`
	Status   string `cbor:"4,keyasint"`
	JoinedAt int64  `cbor:"5,keyasint"`
}

// memberKey is unique per (team, user) pair; userTeamKey is the mirror
// index for listing a user's teams.
func memberKey(teamID, userID string) []byte {
	return []byte(fmt.Sprintf("member:%s:%s", teamID, userID))
}

func userTeamKey(userID, teamID string) []byte {
	return []byte(fmt.Sprintf("uteam:%s:%s", userID, teamID))
}

// CreateMembership inserts the row and its mirror index. A duplicate
// (team, user) pair is a conflict, never an overwrite.
func (m MembershipRepository) CreateMembership(membership domain.Membership) error {
	data, err := encode(fromMembership(membership))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		key := memberKey(membership.TeamID, membership.UserID)
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("%w: membership already exists", errors.ErrConflict)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(userTeamKey(membership.UserID, membership.TeamID), []byte(membership.TeamID))
	})
}

func (m MembershipRepository) GetMembership(teamID, userID string) (domain.Membership, error) {
	var record membershipRecord
	if err := getRecord(m.db, string(memberKey(teamID, userID)), &record); err != nil {
		return domain.Membership{}, err
	}
	return toMembership(record), nil
}

func (m MembershipRepository) ListTeamMembers(teamID string) ([]domain.Membership, error) {
	var members []domain.Membership
	prefix := []byte("member:" + teamID + ":")

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record membershipRecord
			err := it.Item().Value(func(val []byte) error {
				return decode(val, &record)
			})
			if err != nil {
				return err
			}
			members = append(members, toMembership(record))
		}
		return nil
	})
	return members, err
}

func (m MembershipRepository) ListUserTeams(userID string) ([]string, error) {
	var teams []string
	prefix := []byte("uteam:" + userID + ":")

	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			teams = append(teams, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return teams, err
}

// UpdateStatus rewrites the existing row with the new status. Writing the
// same status again is a valid update, not a no-op.
func (m MembershipRepository) UpdateStatus(teamID, userID string, status domain.MemberStatus) error {
	return m.updateRow(teamID, userID, func(record *membershipRecord) {
		record.Status = string(status)
	})
}

func (m MembershipRepository) UpdateRole(teamID, userID string, role domain.Role) error {
	return m.updateRow(teamID, userID, func(record *membershipRecord) {
		record.Role = string(role)
	})
}

func (m MembershipRepository) updateRow(teamID, userID string, mutate func(*membershipRecord)) error {
	err := m.db.Update(func(txn *badger.Txn) error {
		key := memberKey(teamID, userID)
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		var record membershipRecord
		if err := item.Value(func(val []byte) error { return decode(val, &record) }); err != nil {
			return err
		}
		mutate(&record)
		data, err := encode(record)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	return mapNotFound(err)
}

func (m MembershipRepository) DeleteMembership(teamID, userID string) error {
	err := m.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(memberKey(teamID, userID)); err != nil {
			return err
		}
		if err := txn.Delete(memberKey(teamID, userID)); err != nil {
			return err
		}
		return txn.Delete(userTeamKey(userID, teamID))
	})
	return mapNotFound(err)
}

func (m MembershipRepository) CountLeaders(teamID string) (int, error) {
	members, err := m.ListTeamMembers(teamID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, member := range members {
		if member.Role == domain.RoleLeader {
			count++
		}
	}
	return count, nil
}

func fromMembership(m domain.Membership) membershipRecord {
	return membershipRecord{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		Status:   string(m.Status),
		JoinedAt: m.JoinedAt.Unix(),
	}
}

func toMembership(r membershipRecord) domain.Membership {
	return domain.Membership{
		TeamID:   r.TeamID,
		UserID:   r.UserID,
		Role:     domain.Role(r.Role),
		Status:   domain.MemberStatus(r.Status),
		JoinedAt: time.Unix(r.JoinedAt, 0).UTC(),
	}
}
