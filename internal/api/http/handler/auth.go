package handler

import (
	"net/http"
	"strings"

	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/model"
	"github.com/dtroode/chirper-server/internal/validation"
)

const maxPasswordBytes = 72

// Auth serves registration, login and logout.
type Auth struct {
	base
	authService AuthService
}

func NewAuth(authService AuthService, contextManager model.ContextManager, errors *response.Errors) *Auth {
	return &Auth{
		base:        base{contextManager: contextManager, errors: errors},
		authService: authService,
	}
}

// Register handles POST /register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.Struct(req); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	// bcrypt rejects inputs longer than 72 bytes.
	if len(req.Password) > maxPasswordBytes {
		h.errors.Write(w, r, apierror.NewErrValidation(apierror.FieldError{Field: "password", Message: "is too long"}))
		return
	}

	res, err := h.authService.Register(r.Context(), model.RegisterParams{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toAuthResponse(res))
}

// Login handles POST /login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.Struct(req); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	res, err := h.authService.Login(r.Context(), model.LoginParams{Email: req.Email, Password: req.Password})
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toAuthResponse(res))
}

// Logout handles POST /logout.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	if err := h.authService.Logout(r.Context(), identity); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LogoutAll handles POST /logout/all.
func (h *Auth) LogoutAll(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	if err := h.authService.LogoutAll(r.Context(), identity); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAuthResponse(res model.AuthResult) authResponse {
	return authResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      toUserResponse(res.User, true),
	}
}
