package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/metrics"
	"github.com/dtroode/chirper-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	metrics      *metrics.Collector
	logger       *logger.Logger
	bcryptCost   int
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		metrics:      metrics,
		logger:       logger,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

// Register creates the account and signs the user in. The password is hashed
// before it is persisted. The account and its first session are stored
// together, so either both exist or neither does.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (res model.AuthResult, err error) {
	ctx, span := startSpan(ctx, "Auth.Register")
	defer func() { endSpan(span, err) }()

	username := canonical(params.Username)
	email := canonical(params.Email)

	a.logger.Debug("Auth service: starting user registration", "username", username)

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New()
	issued, session, err := a.tokenService.Sign(userID)
	if err != nil {
		a.logger.Error("Auth service: failed to sign token", "username", username, "error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           userID,
		Username:     username,
		Email:        email,
		Name:         params.Name,
		PasswordHash: string(hash),
	}, &session)
	switch {
	case errors.Is(err, model.ErrUsernameExists):
		a.logger.Info("Auth service: username is taken", "username", username)
		return model.AuthResult{}, apierror.NewErrUsernameTaken(username)
	case errors.Is(err, model.ErrEmailExists):
		a.logger.Info("Auth service: email is taken", "username", username)
		return model.AuthResult{}, apierror.NewErrEmailTaken(email)
	case errors.Is(err, model.ErrAlreadyExists):
		return model.AuthResult{}, apierror.NewErrUserExists()
	case err != nil:
		a.logger.Error("Auth service: failed to create user", "username", username, "error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.metrics.Registrations.Inc()
	a.logger.Info("Auth service: user registered", "user_id", user.ID, "username", username)

	return model.AuthResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt, User: user}, nil
}

// Login verifies the credentials and issues a new token. Unknown addresses and
// wrong passwords fail the same way.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (res model.AuthResult, err error) {
	ctx, span := startSpan(ctx, "Auth.Login")
	defer func() { endSpan(span, err) }()

	email := canonical(params.Email)

	creds, err := a.userStore.GetCredentialsByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.metrics.LoginFailures.WithLabelValues("unknown_email").Inc()
		return model.AuthResult{}, apierror.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(params.Password)); err != nil {
		a.metrics.LoginFailures.WithLabelValues("wrong_password").Inc()
		a.logger.Info("Auth service: wrong password", "user_id", creds.UserID)
		return model.AuthResult{}, apierror.NewErrInvalidCredentials()
	}

	user, err := a.userStore.GetByID(ctx, creds.UserID)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	issued, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token", "user_id", user.ID, "error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return model.AuthResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt, User: user}, nil
}

// Logout revokes the token the caller authenticated with.
func (a *Auth) Logout(ctx context.Context, identity model.Identity) error {
	if err := a.tokenService.Revoke(ctx, identity.TokenID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	a.logger.Debug("Auth service: session revoked", "user_id", identity.UserID, "jti", identity.TokenID)
	return nil
}

// LogoutAll revokes every token issued to the caller.
func (a *Auth) LogoutAll(ctx context.Context, identity model.Identity) error {
	if err := a.tokenService.RevokeAllForUser(ctx, identity.UserID); err != nil {
		return fmt.Errorf("failed to logout everywhere: %w", err)
	}
	a.logger.Info("Auth service: all sessions revoked", "user_id", identity.UserID)
	return nil
}

// Authenticate resolves a bearer token to the caller's identity.
func (a *Auth) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	return a.tokenService.Authenticate(ctx, token)
}
