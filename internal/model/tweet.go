package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxContentLength is the maximum tweet and comment length in characters.
	MaxContentLength = 280
	// RecentTweetsLimit bounds the global listing.
	RecentTweetsLimit = 20
	// TimelineLimit bounds the per-viewer timeline.
	TimelineLimit = 50
)

// TweetStore defines persistence operations for tweets and their engagement sets.
type TweetStore interface {
	Create(ctx context.Context, tweet Tweet) (Tweet, error)
	GetByID(ctx context.Context, id uuid.UUID) (Tweet, error)
	ListRecent(ctx context.Context, limit int) ([]Tweet, error)
	ListTimeline(ctx context.Context, viewerID uuid.UUID, limit int) ([]Tweet, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ToggleLike(ctx context.Context, tweetID, userID uuid.UUID) (ToggleResult, error)
	ToggleRetweet(ctx context.Context, tweetID, userID uuid.UUID) (ToggleResult, error)
}

// Tweet represents a stored tweet.
//
// Likes and Retweets are newest first. Comments are oldest first, new
// comments are appended.
type Tweet struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Author    UserSummary
	Content   string
	ImageURL  string
	Likes     []uuid.UUID
	Retweets  []uuid.UUID
	Comments  []uuid.UUID
	ParentID  *uuid.UUID
	Parent    *Tweet
	IsRetweet bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTweetParams contains parameters to create a tweet.
type CreateTweetParams struct {
	AuthorID uuid.UUID
	Content  string
	Image    *Upload
}

// DeleteTweetResult reports what a tweet deletion removed.
type DeleteTweetResult struct {
	ID              uuid.UUID
	DeletedComments int64
}
