package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SuggestionsLimit bounds the who-to-follow query.
const SuggestionsLimit = 5

// UserStore defines persistence operations for users.
//
// Every read except GetCredentialsByEmail leaves PasswordHash empty.
// Create persists the optional first session in the same transaction as the user.
type UserStore interface {
	Create(ctx context.Context, user User, session *Session) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (Credentials, error)
	Update(ctx context.Context, id uuid.UUID, patch ProfilePatch) (User, error)
	Suggestions(ctx context.Context, userID uuid.UUID, limit int) ([]UserSummary, error)
}

// FollowStore persists directed follow edges. One edge is both an entry of
// the follower's following set and of the followee's followers set.
type FollowStore interface {
	Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (ToggleResult, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]UserSummary, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]UserSummary, error)
}

// User represents a stored user profile together with its edge sets.
type User struct {
	ID              uuid.UUID
	Username        string
	Email           string
	Name            string
	PasswordHash    string
	ProfileImageURL string
	CoverImageURL   string
	Bio             string
	Location        string
	Website         string
	Verified        bool
	Following       []uuid.UUID
	Followers       []uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserSummary is the compact user shape embedded in tweets, comments and lists.
type UserSummary struct {
	ID              uuid.UUID
	Username        string
	Name            string
	ProfileImageURL string
	Verified        bool
}

// Summary returns the compact form of u.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		ProfileImageURL: u.ProfileImageURL,
		Verified:        u.Verified,
	}
}

// Profile is a user with both edge sets resolved to summaries.
type Profile struct {
	User
	FollowingUsers []UserSummary
	FollowerUsers  []UserSummary
}

// Credentials carries the password hash of a user for login verification.
type Credentials struct {
	UserID       uuid.UUID
	PasswordHash string
}

// ProfilePatch is a partial profile update; nil fields keep their stored value.
type ProfilePatch struct {
	Name            *string
	Bio             *string
	Location        *string
	Website         *string
	ProfileImageURL *string
	CoverImageURL   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil && p.Location == nil && p.Website == nil &&
		p.ProfileImageURL == nil && p.CoverImageURL == nil
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Name     string
	Username string
	Email    string
	Password string
}

// LoginParams contains parameters to log a user in.
type LoginParams struct {
	Email    string
	Password string
}

// UpdateProfileParams contains a profile patch plus optional new images.
type UpdateProfileParams struct {
	UserID       uuid.UUID
	Patch        ProfilePatch
	ProfileImage *Upload
	CoverImage   *Upload
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// ToggleResult describes the state of a set after a toggle.
type ToggleResult struct {
	Active bool
	IDs    []uuid.UUID
}
