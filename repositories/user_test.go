package repositories

import (
	"testing"

	"opsroom/errors"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(newTestDB(t))

	id, err := repo.CreateUser("alice@example.com", "Falcon", "hashed-secret")
	req.NoError(err)
	req.NotEmpty(id)

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(id, byEmail.ID)
	req.Equal("Falcon", byEmail.CallSign)

	byID, err := repo.GetUserByID(id)
	req.NoError(err)
	req.Equal("alice@example.com", byID.Email)

	_, err = repo.GetUserByEmail("nobody@example.com")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.CreateUser("alice@example.com", "Falcon", "hash-1")
	req.NoError(err)

	_, err = repo.CreateUser("alice@example.com", "Eagle", "hash-2")

	req.ErrorIs(err, errors.ErrUserAlreadyExists)
	req.ErrorIs(err, errors.ErrConflict)
}
