//go:generate go run go.uber.org/mock/mockgen -source=mission.go -destination=../mocks/mock_mission_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"opsroom/domain"

	"github.com/dgraph-io/badger/v4"
)

type IMissionRepository interface {
	CreateMission(m domain.Mission) error
	GetMission(id string) (domain.Mission, error)
	UpdateMission(m domain.Mission) error
	ListTeamMissions(teamID string) ([]domain.Mission, error)
}

type MissionRepository struct {
	db *badger.DB
}

func NewMissionRepository(db *badger.DB) IMissionRepository {
	return &MissionRepository{db: db}
}

type missionRecord struct {
	ID          string `cbor:"1,keyasint"`
	TeamID      string `cbor:"2,keyasint"`
	Title       string `cbor:"3,keyasint"`
	Description string `cbor:"4,keyasint"`
	Status      string `cbor:"5,keyasint"`
	Priority    string `cbor:"6,keyasint"`
	CreatedBy   string `cbor:"7,keyasint"`
	CreatedAt   int64  `cbor:"8,keyasint"`
	UpdatedAt   int64  `cbor:"9,keyasint"`
}

func missionKey(id string) []byte { return []byte("mission:" + id) }

// teamMissionKey is the secondary index used for per-team listing.
func teamMissionKey(teamID, missionID string) []byte {
	return []byte(fmt.Sprintf("midx:%s:%s", teamID, missionID))
}

func (r MissionRepository) CreateMission(mission domain.Mission) error {
	data, err := encode(fromMission(mission))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(missionKey(mission.ID), data); err != nil {
			return err
		}
		return txn.Set(teamMissionKey(mission.TeamID, mission.ID), nil)
	})
}

func (r MissionRepository) GetMission(id string) (domain.Mission, error) {
	var record missionRecord
	if err := getRecord(r.db, string(missionKey(id)), &record); err != nil {
		return domain.Mission{}, err
	}
	return toMission(record), nil
}

func (r MissionRepository) UpdateMission(mission domain.Mission) error {
	data, err := encode(fromMission(mission))
	if err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(missionKey(mission.ID)); err != nil {
			return err
		}
		return txn.Set(missionKey(mission.ID), data)
	})
	return mapNotFound(err)
}

func (r MissionRepository) ListTeamMissions(teamID string) ([]domain.Mission, error) {
	var ids []string
	prefix := []byte("midx:" + teamID + ":")

	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	missions := make([]domain.Mission, 0, len(ids))
	for _, id := range ids {
		mission, err := r.GetMission(id)
		if err != nil {
			return nil, err
		}
		missions = append(missions, mission)
	}
	return missions, nil
}

func fromMission(m domain.Mission) missionRecord {
	return missionRecord{
		ID:          m.ID,
		TeamID:      m.TeamID,
		Title:       m.Title,
		Description: m.Description,
		Status:      string(m.Status),
		Priority:    string(m.Priority),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.Unix(),
		UpdatedAt:   m.UpdatedAt.Unix(),
	}
}

func toMission(r missionRecord) domain.Mission {
	return domain.Mission{
		ID:          r.ID,
		TeamID:      r.TeamID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.MissionStatus(r.Status),
		Priority:    domain.MissionPriority(r.Priority),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt:   time.Unix(r.UpdatedAt, 0).UTC(),
	}
}
