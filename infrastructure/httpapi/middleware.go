package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"opsroom/auth"
	"opsroom/domain"
	"opsroom/errors"
)

type contextKey struct{}

var identityKey contextKey

// bearerAuth resolves the Authorization header into an identity and attaches
// it to the request context. Requests without a valid token never reach a
// handler.
func bearerAuth(tokens *auth.TokenManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := tokens.Resolve(r.Header.Get("Authorization"))
			if err != nil {
				respondError(w, log, err)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFrom(r *http.Request) (domain.Identity, error) {
	identity, ok := r.Context().Value(identityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: no identity in context", errors.ErrAuthentication)
	}
	return identity, nil
}
