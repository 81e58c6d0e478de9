package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/model"
)

// Authenticator resolves a caller identity from a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate is the access gate of private routes.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	errors         *response.Errors
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, errors *response.Errors) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, errors: errors}
}

// Resolve reads the bearer token of r and returns the identity it belongs to.
func (m *Authenticate) Resolve(r *http.Request) (model.Identity, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return model.Identity{}, apierror.NewErrMissingAuthorizationToken()
	}

	identity, err := m.authenticator.Authenticate(r.Context(), token)
	if err != nil {
		return model.Identity{}, err
	}
	return identity, nil
}

// Handler rejects requests without a valid token and stores the identity on the request context.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.Resolve(r)
		if err != nil {
			m.errors.Write(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(m.contextManager.SetIdentity(r.Context(), identity)))
	})
}
