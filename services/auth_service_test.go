package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"opsroom/auth"
	"opsroom/domain"
	"opsroom/errors"
	"opsroom/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthServiceFixture(t *testing.T) (*mocks.MockIUserRepository, *AuthService) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return users, NewAuthService(slog.Default(), users, tokens)
}

func TestAuthService_RegisterIssuesToken(t *testing.T) {
	req := require.New(t)
	users, svc := newAuthServiceFixture(t)

	var storedHash string
	users.EXPECT().
		CreateUser("alice@example.com", "Falcon", gomock.Any()).
		DoAndReturn(func(_, _, hash string) (string, error) {
			storedHash = hash
			return "user-1", nil
		}).
		Times(1)
	users.EXPECT().
		GetUserByID("user-1").
		DoAndReturn(func(string) (domain.User, error) {
			return domain.User{
				ID:           "user-1",
				Email:        "alice@example.com",
				CallSign:     "Falcon",
				PasswordHash: storedHash,
			}, nil
		}).
		Times(1)

	result, err := svc.Register(context.Background(), "alice@example.com", "Falcon", "CorrectHorse42!")

	req.NoError(err)
	req.NotEmpty(result.Token)
	req.Equal("user-1", result.User.ID)
	// The hash never leaks back out, and the raw password is never stored
	req.Empty(result.User.PasswordHash)
	req.NotEqual("CorrectHorse42!", storedHash)
}

func TestAuthService_RegisterRejectsWeakPassword(t *testing.T) {
	req := require.New(t)
	_, svc := newAuthServiceFixture(t)

	// Long enough but no upper case, digit or symbol; the repository is
	// never touched
	_, err := svc.Register(context.Background(), "alice@example.com", "Falcon", "alllowercasepassword")

	req.ErrorIs(err, errors.ErrValidation)
}

func TestAuthService_RegisterRejectsShortPassword(t *testing.T) {
	req := require.New(t)
	_, svc := newAuthServiceFixture(t)

	_, err := svc.Register(context.Background(), "alice@example.com", "Falcon", "Short1!")

	req.ErrorIs(err, errors.ErrValidation)
}

func TestAuthService_RegisterRejectsDuplicateEmail(t *testing.T) {
	req := require.New(t)
	users, svc := newAuthServiceFixture(t)

	users.EXPECT().
		CreateUser("alice@example.com", "Falcon", gomock.Any()).
		Return("", errors.ErrUserAlreadyExists).
		Times(1)

	_, err := svc.Register(context.Background(), "alice@example.com", "Falcon", "CorrectHorse42!")

	req.ErrorIs(err, errors.ErrUserAlreadyExists)
	req.ErrorIs(err, errors.ErrConflict)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	req := require.New(t)
	users, svc := newAuthServiceFixture(t)

	hash, err := auth.HashPassword("CorrectHorse42!")
	req.NoError(err)
	users.EXPECT().
		GetUserByEmail("alice@example.com").
		Return(domain.User{ID: "user-1", Email: "alice@example.com", PasswordHash: hash}, nil).
		Times(1)

	_, err = svc.Login(context.Background(), "alice@example.com", "WrongHorse42!")

	req.ErrorIs(err, errors.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmailSameError(t *testing.T) {
	req := require.New(t)
	users, svc := newAuthServiceFixture(t)

	users.EXPECT().
		GetUserByEmail("nobody@example.com").
		Return(domain.User{}, errors.ErrNotFound).
		Times(1)

	// Unknown email and wrong password are indistinguishable to the caller
	_, err := svc.Login(context.Background(), "nobody@example.com", "CorrectHorse42!")

	req.ErrorIs(err, errors.ErrInvalidCredentials)
	req.ErrorIs(err, errors.ErrAuthentication)
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	req := require.New(t)
	users, svc := newAuthServiceFixture(t)

	hash, err := auth.HashPassword("CorrectHorse42!")
	req.NoError(err)
	users.EXPECT().
		GetUserByEmail("alice@example.com").
		Return(domain.User{ID: "user-1", Email: "alice@example.com", CallSign: "Falcon", PasswordHash: hash}, nil).
		Times(1)

	result, err := svc.Login(context.Background(), "alice@example.com", "CorrectHorse42!")

	req.NoError(err)
	req.NotEmpty(result.Token)
	req.Empty(result.User.PasswordHash)
}
