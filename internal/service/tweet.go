package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/metrics"
	"github.com/dtroode/chirper-server/internal/model"
)

type Tweet struct {
	tweetStore model.TweetStore
	userStore  model.UserStore
	media      model.MediaStore
	metrics    *metrics.Collector
	logger     *logger.Logger
}

func NewTweet(
	tweetStore model.TweetStore,
	userStore model.UserStore,
	media model.MediaStore,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *Tweet {
	return &Tweet{
		tweetStore: tweetStore,
		userStore:  userStore,
		media:      media,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create validates the content, uploads the image if any and stores the tweet.
// If storing fails the uploaded image is removed again.
func (s *Tweet) Create(ctx context.Context, params model.CreateTweetParams) (tweet model.Tweet, err error) {
	ctx, span := startSpan(ctx, "Tweet.Create")
	defer func() { endSpan(span, err) }()

	content := strings.TrimSpace(params.Content)
	if err := validateContent(content, params.Image != nil); err != nil {
		return model.Tweet{}, err
	}

	tweet = model.Tweet{
		ID:       uuid.New(),
		AuthorID: params.AuthorID,
		Content:  content,
	}

	if params.Image != nil {
		tweet.ImageURL, err = s.media.Store(ctx, model.FolderTweets, *params.Image)
		s.metrics.MediaUpload(model.FolderTweets, err)
		if err != nil {
			s.logger.Error("Tweet service: failed to store image", "author_id", params.AuthorID, "error", err.Error())
			return model.Tweet{}, fmt.Errorf("failed to store image: %w", err)
		}
	}

	created, err := s.tweetStore.Create(ctx, tweet)
	if err != nil {
		if tweet.ImageURL != "" {
			if err := s.media.Remove(ctx, tweet.ImageURL); err != nil {
				s.logger.Error("Tweet service: failed to remove orphaned image", "url", tweet.ImageURL, "error", err.Error())
			}
		}
		if errors.Is(err, model.ErrNotFound) {
			return model.Tweet{}, apierror.NewErrUserNotFound(params.AuthorID.String())
		}
		return model.Tweet{}, fmt.Errorf("failed to create tweet: %w", err)
	}

	s.metrics.TweetsCreated.Inc()
	return created, nil
}

func (s *Tweet) Get(ctx context.Context, id uuid.UUID) (model.Tweet, error) {
	tweet, err := s.tweetStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Tweet{}, apierror.NewErrTweetNotFound(id)
	}
	if err != nil {
		return model.Tweet{}, fmt.Errorf("failed to get tweet by id: %w", err)
	}
	return tweet, nil
}

// ListRecent returns the newest tweets across all users.
func (s *Tweet) ListRecent(ctx context.Context) ([]model.Tweet, error) {
	tweets, err := s.tweetStore.ListRecent(ctx, model.RecentTweetsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tweets: %w", err)
	}
	return tweets, nil
}

// Timeline returns the viewer's tweets and those of accounts the viewer follows.
func (s *Tweet) Timeline(ctx context.Context, viewerID uuid.UUID) (tweets []model.Tweet, err error) {
	ctx, span := startSpan(ctx, "Tweet.Timeline")
	defer func() { endSpan(span, err) }()

	tweets, err = s.tweetStore.ListTimeline(ctx, viewerID, model.TimelineLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	return tweets, nil
}

func (s *Tweet) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Tweet, error) {
	if _, err := s.userStore.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, apierror.NewErrUserNotFound(authorID.String())
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	tweets, err := s.tweetStore.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets by author: %w", err)
	}
	return tweets, nil
}

// Delete removes the actor's tweet together with its comments.
func (s *Tweet) Delete(ctx context.Context, actorID, id uuid.UUID) (res model.DeleteTweetResult, err error) {
	ctx, span := startSpan(ctx, "Tweet.Delete")
	defer func() { endSpan(span, err) }()

	tweet, err := s.Get(ctx, id)
	if err != nil {
		return model.DeleteTweetResult{}, err
	}
	if tweet.AuthorID != actorID {
		return model.DeleteTweetResult{}, apierror.NewErrNotTweetAuthor(id)
	}

	deleted, err := s.tweetStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.DeleteTweetResult{}, apierror.NewErrTweetNotFound(id)
	}
	if err != nil {
		s.logger.Error("Tweet service: failed to delete tweet", "tweet_id", id, "error", err.Error())
		return model.DeleteTweetResult{}, fmt.Errorf("failed to delete tweet: %w", err)
	}

	if tweet.ImageURL != "" {
		if err := s.media.Remove(ctx, tweet.ImageURL); err != nil {
			s.logger.Warn("Tweet service: failed to remove image", "url", tweet.ImageURL, "error", err.Error())
		}
	}

	s.metrics.TweetsDeleted.Inc()
	s.logger.Debug("Tweet service: tweet deleted", "tweet_id", id, "comments", deleted)

	return model.DeleteTweetResult{ID: id, DeletedComments: deleted}, nil
}

// ToggleLike likes the tweet for the actor, or unlikes it if already liked.
func (s *Tweet) ToggleLike(ctx context.Context, actorID, id uuid.UUID) (res model.ToggleResult, err error) {
	ctx, span := startSpan(ctx, "Tweet.ToggleLike")
	defer func() { endSpan(span, err) }()

	res, err = s.tweetStore.ToggleLike(ctx, id, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ToggleResult{}, apierror.NewErrTweetNotFound(id)
	}
	if err != nil {
		return model.ToggleResult{}, fmt.Errorf("failed to toggle like: %w", err)
	}

	s.metrics.Toggle("tweet_like", res.Active)
	return res, nil
}

// ToggleRetweet retweets the tweet for the actor, or undoes the retweet.
func (s *Tweet) ToggleRetweet(ctx context.Context, actorID, id uuid.UUID) (res model.ToggleResult, err error) {
	ctx, span := startSpan(ctx, "Tweet.ToggleRetweet")
	defer func() { endSpan(span, err) }()

	res, err = s.tweetStore.ToggleRetweet(ctx, id, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ToggleResult{}, apierror.NewErrTweetNotFound(id)
	}
	if err != nil {
		return model.ToggleResult{}, fmt.Errorf("failed to toggle retweet: %w", err)
	}

	s.metrics.Toggle("retweet", res.Active)
	return res, nil
}
