//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"time"

	"opsroom/domain"
	"opsroom/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(email, callSign, hashedPassword string) (string, error)
	GetUserByEmail(email string) (domain.User, error)
	GetUserByID(id string) (domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

type userRecord struct {
	ID           string `cbor:"1,keyasint"`
	Email        string `cbor:"2,keyasint"`
	CallSign     string `cbor:"3,keyasint"`
	PasswordHash string `cbor:"4,keyasint"`
	Role         string `cbor:"5,keyasint"`
	CreatedAt    int64  `cbor:"6,keyasint"`
}

func userKey(id string) []byte    { return []byte("user:id:" + id) }
func emailKey(email string) []byte { return []byte("user:email:" + email) }

// CreateUser persists the user and a unique email index entry.
// Returns the newly generated user ID.
func (u UserRepository) CreateUser(email, callSign, hashedPassword string) (string, error) {
	newID := uuid.NewString()
	record := userRecord{
		ID:           newID,
		Email:        email,
		CallSign:     callSign,
		PasswordHash: hashedPassword,
		Role:         "user",
		CreatedAt:    time.Now().Unix(),
	}

	data, err := encode(record)
	if err != nil {
		return "", err
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(emailKey(email), []byte(newID)); err != nil {
			return err
		}
		return txn.Set(userKey(newID), data)
	})
	return newID, err
}

func (u UserRepository) GetUserByEmail(email string) (domain.User, error) {
	var id string
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u.GetUserByID(id)
}

func (u UserRepository) GetUserByID(id string) (domain.User, error) {
	var record userRecord
	if err := getRecord(u.db, string(userKey(id)), &record); err != nil {
		return domain.User{}, err
	}
	return toUser(record), nil
}

func toUser(r userRecord) domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		CallSign:     r.CallSign,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    time.Unix(r.CreatedAt, 0).UTC(),
	}
}
