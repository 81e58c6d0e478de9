package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/model"
)

func TestAuth_Register(t *testing.T) {
	user := model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", Name: "Alice", PasswordHash: "$2a$secret"}
	result := model.AuthResult{Token: "tok", ExpiresAt: time.Now().Add(model.TokenTTL), User: user}

	tests := []struct {
		name       string
		body       any
		setupMock  func(*MockAuthService)
		wantStatus int
		wantFields []string
	}{
		{
			name: "success",
			body: map[string]string{"name": " Alice ", "username": "Alice", "email": "ALICE@example.com", "password": "secret1"},
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, model.RegisterParams{
					Name: "Alice", Username: "Alice", Email: "ALICE@example.com", Password: "secret1",
				}).Return(result, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"name", "username", "email", "password"},
		},
		{
			name:       "invalid email and short password",
			body:       map[string]string{"name": "A", "username": "alice", "email": "nope", "password": "123"},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"email", "password"},
		},
		{
			name:       "username with symbols",
			body:       map[string]string{"name": "A", "username": "al ice!", "email": "a@b.co", "password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"username"},
		},
		{
			name:       "password over 72 bytes",
			body:       map[string]string{"name": "A", "username": "alice", "email": "a@b.co", "password": strings.Repeat("é", 40)},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"password"},
		},
		{
			name:       "body over the json limit",
			body:       map[string]string{"name": strings.Repeat("a", maxJSONBytes), "username": "alice", "email": "a@b.co", "password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"body"},
		},
		{
			name: "duplicate username",
			body: map[string]string{"name": "A", "username": "alice", "email": "a@b.co", "password": "secret1"},
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.Anything).Return(model.AuthResult{}, apierror.NewErrUsernameTaken("alice"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			h := NewAuth(svc, nil, newErrors())

			rec := serve(t, http.MethodPost, "/register", h.Register, jsonRequest(t, http.MethodPost, "/register", tt.body), model.Identity{})

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.NotContains(t, rec.Body.String(), "password")
				assert.NotContains(t, rec.Body.String(), "$2a$")
				body := decodeBody[authResponse](t, rec)
				assert.Equal(t, "tok", body.Token)
				assert.Equal(t, user.ID, body.User.ID)
				assert.Equal(t, []uuid.UUID{}, body.User.Following)
			}
			if len(tt.wantFields) > 0 {
				body := decodeBody[response.ErrorBody](t, rec)
				got := make([]string, 0, len(body.Error.Fields))
				for _, f := range body.Error.Fields {
					got = append(got, f.Field)
				}
				assert.ElementsMatch(t, tt.wantFields, got)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockAuthService)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, model.LoginParams{Email: "alice@example.com", Password: "secret1"}).
					Return(model.AuthResult{Token: "tok", User: model.User{ID: uuid.New()}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: `{"email":"alice@example.com","password":"wrong"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, mock.Anything).Return(model.AuthResult{}, apierror.NewErrInvalidCredentials())
			},
			wantStatus: http.StatusBadRequest,
		},
		{name: "malformed json", body: `{"email":`, wantStatus: http.StatusBadRequest},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			h := NewAuth(svc, nil, newErrors())

			req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			rec := serve(t, http.MethodPost, "/login", h.Login, req, model.Identity{})

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	identity := model.Identity{UserID: uuid.New(), TokenID: "jti-1"}

	t.Run("revokes the current session", func(t *testing.T) {
		svc := &MockAuthService{}
		svc.On("Logout", mock.Anything, identity).Return(nil)
		h := NewAuth(svc, contextManager(), newErrors())

		rec := serve(t, http.MethodPost, "/logout", h.Logout, jsonRequest(t, http.MethodPost, "/logout", nil), identity)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("revokes all sessions", func(t *testing.T) {
		svc := &MockAuthService{}
		svc.On("LogoutAll", mock.Anything, identity).Return(nil)
		h := NewAuth(svc, contextManager(), newErrors())

		rec := serve(t, http.MethodPost, "/logout/all", h.LogoutAll, jsonRequest(t, http.MethodPost, "/logout/all", nil), identity)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc := &MockAuthService{}
		h := NewAuth(svc, contextManager(), newErrors())

		rec := serve(t, http.MethodPost, "/logout", h.Logout, jsonRequest(t, http.MethodPost, "/logout", nil), model.Identity{})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})
}
