package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CommentStore defines persistence operations for comments.
type CommentStore interface {
	Create(ctx context.Context, comment Comment) (Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (Comment, error)
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (ToggleResult, error)
}

// Comment is a reply attached to exactly one tweet.
type Comment struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Author    UserSummary
	TweetID   uuid.UUID
	Content   string
	Likes     []uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCommentParams contains parameters to comment on a tweet.
type CreateCommentParams struct {
	AuthorID uuid.UUID
	TweetID  uuid.UUID
	Content  string
}
