//go:generate go run go.uber.org/mock/mockgen -source=team.go -destination=../mocks/mock_team_repository.go -package=mocks
package repositories

import (
	"time"

	"opsroom/domain"

	"github.com/dgraph-io/badger/v4"
)

type ITeamRepository interface {
	CreateTeam(team domain.Team) error
	GetTeam(id string) (domain.Team, error)
	DeleteTeam(id string) error
}

type TeamRepository struct {
	db *badger.DB
}

func NewTeamRepository(db *badger.DB) ITeamRepository {
	return &TeamRepository{db: db}
}

type teamRecord struct {
	ID          string `cbor:"1,keyasint"`
	Name        string `cbor:"2,keyasint"`
	Description string `cbor:"3,keyasint"`
	CreatedBy   string `cbor:"4,keyasint"`
	CreatedAt   int64  `cbor:"5,keyasint"`
}

func teamKey(id string) []byte { return []byte("team:" + id) }

func (t TeamRepository) CreateTeam(team domain.Team) error {
	data, err := encode(teamRecord{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedBy:   team.CreatedBy,
		CreatedAt:   team.CreatedAt.Unix(),
	})
	if err != nil {
		return err
	}
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(teamKey(team.ID), data)
	})
}

func (t TeamRepository) GetTeam(id string) (domain.Team, error) {
	var record teamRecord
	if err := getRecord(t.db, string(teamKey(id)), &record); err != nil {
		return domain.Team{}, err
	}
	return domain.Team{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		CreatedBy:   record.CreatedBy,
		CreatedAt:   time.Unix(record.CreatedAt, 0).UTC(),
	}, nil
}

// DeleteTeam removes the team row. Used by the create-team compensation
// path when the leader membership insert fails.
func (t TeamRepository) DeleteTeam(id string) error {
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(teamKey(id))
	})
}
