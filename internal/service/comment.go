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

type Comment struct {
	commentStore model.CommentStore
	tweetStore   model.TweetStore
	metrics      *metrics.Collector
	logger       *logger.Logger
}

func NewComment(
	commentStore model.CommentStore,
	tweetStore model.TweetStore,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *Comment {
	return &Comment{
		commentStore: commentStore,
		tweetStore:   tweetStore,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *Comment) Create(ctx context.Context, params model.CreateCommentParams) (comment model.Comment, err error) {
	ctx, span := startSpan(ctx, "Comment.Create")
	defer func() { endSpan(span, err) }()

	content := strings.TrimSpace(params.Content)
	if err := validateContent(content, false); err != nil {
		return model.Comment{}, err
	}

	comment, err = s.commentStore.Create(ctx, model.Comment{
		ID:       uuid.New(),
		AuthorID: params.AuthorID,
		TweetID:  params.TweetID,
		Content:  content,
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.Comment{}, apierror.NewErrTweetNotFound(params.TweetID)
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	s.metrics.Comments.Inc()
	return comment, nil
}

// ListByTweet returns the tweet's comments, newest first.
func (s *Comment) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.tweetStore.GetByID(ctx, tweetID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, apierror.NewErrTweetNotFound(tweetID)
		}
		return nil, fmt.Errorf("failed to get tweet by id: %w", err)
	}

	comments, err := s.commentStore.ListByTweet(ctx, tweetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *Comment) Delete(ctx context.Context, actorID, id uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "Comment.Delete")
	defer func() { endSpan(span, err) }()

	comment, err := s.commentStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrCommentNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to get comment by id: %w", err)
	}
	if comment.AuthorID != actorID {
		return apierror.NewErrNotCommentAuthor(id)
	}

	err = s.commentStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrCommentNotFound(id)
	}
	if err != nil {
		s.logger.Error("Comment service: failed to delete comment", "comment_id", id, "error", err.Error())
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *Comment) ToggleLike(ctx context.Context, actorID, id uuid.UUID) (res model.ToggleResult, err error) {
	ctx, span := startSpan(ctx, "Comment.ToggleLike")
	defer func() { endSpan(span, err) }()

	res, err = s.commentStore.ToggleLike(ctx, id, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ToggleResult{}, apierror.NewErrCommentNotFound(id)
	}
	if err != nil {
		return model.ToggleResult{}, fmt.Errorf("failed to toggle comment like: %w", err)
	}

	s.metrics.Toggle("comment_like", res.Active)
	return res, nil
}
