package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/apierror"
)

// RequireUUID answers 404 when any of the named path parameters is not a UUID,
// before the request reaches its handler.
func RequireUUID(errors *response.Errors, names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, name := range names {
				if _, err := PathUUID(r, name); err != nil {
					errors.Write(w, r, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PathUUID parses the named path parameter of r.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierror.NewErrMalformedID(raw)
	}
	return id, nil
}
