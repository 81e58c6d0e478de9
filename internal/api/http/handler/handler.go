// Package handler contains the HTTP handlers of the JSON API.
package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/model"
)

// AuthService handles account creation and sessions.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error)
	Login(ctx context.Context, params model.LoginParams) (model.AuthResult, error)
	Logout(ctx context.Context, identity model.Identity) error
	LogoutAll(ctx context.Context, identity model.Identity) error
}

// UserService handles profiles and the follow graph.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (model.Profile, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	UpdateProfile(ctx context.Context, params model.UpdateProfileParams) (model.User, error)
	ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (model.ToggleResult, error)
	Suggestions(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error)
	Followers(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error)
	Following(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error)
}

// TweetService handles tweets and their engagement.
type TweetService interface {
	Create(ctx context.Context, params model.CreateTweetParams) (model.Tweet, error)
	Get(ctx context.Context, id uuid.UUID) (model.Tweet, error)
	ListRecent(ctx context.Context) ([]model.Tweet, error)
	Timeline(ctx context.Context, viewerID uuid.UUID) ([]model.Tweet, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Tweet, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) (model.DeleteTweetResult, error)
	ToggleLike(ctx context.Context, actorID, id uuid.UUID) (model.ToggleResult, error)
	ToggleRetweet(ctx context.Context, actorID, id uuid.UUID) (model.ToggleResult, error)
}

// CommentService handles comments.
type CommentService interface {
	Create(ctx context.Context, params model.CreateCommentParams) (model.Comment, error)
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]model.Comment, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	ToggleLike(ctx context.Context, actorID, id uuid.UUID) (model.ToggleResult, error)
}

// base holds what every handler needs to read the caller and write errors.
type base struct {
	contextManager model.ContextManager
	errors         *response.Errors
}

// identity returns the caller stored by the access gate.
func (b base) identity(r *http.Request) (model.Identity, error) {
	identity, ok := b.contextManager.GetIdentity(r.Context())
	if !ok || identity.UserID == uuid.Nil {
		return model.Identity{}, apierror.NewErrMissingAuthorizationToken()
	}
	return identity, nil
}
