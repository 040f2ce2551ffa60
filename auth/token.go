package auth

import (
	"fmt"
	"strings"
	"time"

	"opsroom/domain"
	"opsroom/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the data stored inside the JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and resolves bearer credentials. The signing secret
// comes from configuration, never from source.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Generate creates a signed JWT for a user.
func (m *TokenManager) Generate(userID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "opsroom",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Resolve validates a bearer credential and returns the authenticated
// identity. The "Bearer " prefix is accepted and stripped. Used identically
// for HTTP requests and realtime handshakes.
func (m *TokenManager) Resolve(bearer string) (domain.Identity, error) {
	tokenStr := strings.TrimPrefix(bearer, "Bearer ")
	if tokenStr == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing token", errors.ErrAuthentication)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: invalid or expired token", errors.ErrAuthentication)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Identity{}, fmt.Errorf("%w: invalid claims", errors.ErrAuthentication)
	}

	return domain.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
