// Package response writes JSON bodies and maps service errors to HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/logger"
)

const codeInternal = "INTERNAL"

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  []apierror.FieldError `json:"fields,omitempty"`
	Detail  string                `json:"detail,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Errors renders errors. Internal detail is only exposed in debug mode.
type Errors struct {
	logger *logger.Logger
	debug  bool
}

func NewErrors(logger *logger.Logger, debug bool) *Errors {
	return &Errors{logger: logger, debug: debug}
}

// StatusOf maps an error to its HTTP status by its API error kind.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apierror.ErrValidation),
		errors.Is(err, apierror.ErrInvalidOperation),
		errors.Is(err, apierror.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apierror.ErrUnauthorized), errors.Is(err, apierror.ErrForbidden):
		return http.StatusUnauthorized
	case errors.Is(err, apierror.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (e *Errors) Write(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		if errors.Is(err, apierror.ErrUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		JSON(w, StatusOf(err), ErrorBody{Error: ErrorDetail{
			Code:    string(apiErr.Kind),
			Message: apiErr.Message,
			Fields:  apiErr.Fields,
		}})
		return
	}

	e.logger.Error("HTTP: request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err.Error())

	detail := ErrorDetail{Code: codeInternal, Message: "internal server error"}
	if e.debug {
		detail.Detail = err.Error()
	}
	JSON(w, http.StatusInternalServerError, ErrorBody{Error: detail})
}
