package services

import (
	"context"
	"fmt"
	"log/slog"

	"opsroom/auth"
	"opsroom/domain"
	"opsroom/errors"
	"opsroom/repositories"
)

type AuthResult struct {
	User  domain.User
	Token string
}

type IAuthService interface {
	Register(ctx context.Context, email, callSign, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type AuthService struct {
	log    *slog.Logger
	users  repositories.IUserRepository
	tokens *auth.TokenManager
}

func NewAuthService(log *slog.Logger, users repositories.IUserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{log: log, users: users, tokens: tokens}
}

// Register validates the credentials, hashes the password and stores the
// user. A fresh token is returned so the client can connect immediately.
func (s *AuthService) Register(_ context.Context, email, callSign, password string) (AuthResult, error) {
	req := auth.RegisterRequest{Email: email, CallSign: callSign, Password: password}
	if err := auth.ValidateRegister(req); err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.CreateUser(email, callSign, hashed)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(user)
}

// Login verifies the password against the stored hash. Unknown email and
// wrong password produce the same generic error on purpose.
func (s *AuthService) Login(_ context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return AuthResult{}, errors.ErrInvalidCredentials
	}

	ok, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, errors.ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) issue(user domain.User) (AuthResult, error) {
	token, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	user.PasswordHash = ""
	return AuthResult{User: user, Token: token}, nil
}
