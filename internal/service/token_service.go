package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

// TokenService issues bearer tokens, resolves them to identities and revokes
// them. It composes the TokenManager, the SessionStore and the UserStore.
type TokenService struct {
	manager model.TokenManager
	store   model.SessionStore
	users   model.UserStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.SessionStore, users model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, users: users, logger: logger, now: time.Now}
}

// Sign signs a token for the user and returns the session that must be
// persisted before the token is handed out.
func (s *TokenService) Sign(userID uuid.UUID) (model.IssuedToken, model.Session, error) {
	issued, err := s.manager.Generate(userID)
	if err != nil {
		return model.IssuedToken{}, model.Session{}, fmt.Errorf("issue token: %w", err)
	}

	return issued, model.Session{
		ID:        uuid.New(),
		JTI:       issued.JTI,
		UserID:    userID,
		TokenHash: hashToken(issued.Token),
		IssuedAt:  issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// Issue signs a token for the user and persists its session.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (model.IssuedToken, error) {
	issued, session, err := s.Sign(userID)
	if err != nil {
		return model.IssuedToken{}, err
	}
	if err := s.store.Create(ctx, session); err != nil {
		return model.IssuedToken{}, fmt.Errorf("persist session: %w", err)
	}

	return issued, nil
}

// Authenticate verifies the token, its session and its user, in that order.
func (s *TokenService) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: rejected token", "error", err.Error())
		return model.Identity{}, apierror.NewErrInvalidAuthorizationToken()
	}

	session, err := s.store.GetByJTI(ctx, claims.JTI)
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, apierror.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err := validateSession(session, claims.UserID, hashToken(token), s.now()); err != nil {
		s.logger.Debug("Token service: rejected session", "jti", claims.JTI, "error", err.Error())
		return model.Identity{}, apierror.NewErrInvalidAuthorizationToken()
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, apierror.NewErrUserNotFound(claims.UserID.String())
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return model.Identity{UserID: user.ID, Username: user.Username, TokenID: claims.JTI}, nil
}

func (s *TokenService) Revoke(ctx context.Context, jti string) error {
	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateSession(session model.Session, userID uuid.UUID, presentedHash []byte, now time.Time) error {
	if session.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(session.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if session.UserID != userID || subtle.ConstantTimeCompare(session.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
