package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/chirper-server/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

const commentSelect = `
	SELECT c.id, c.author_id, u.username, u.name, u.profile_image_url, u.verified,
		c.tweet_id, c.content,
		ARRAY(SELECT l.user_id FROM comment_likes l WHERE l.comment_id = c.id ORDER BY l.created_at DESC),
		c.created_at, c.updated_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

type CommentRepository struct {
	db *Connection
}

func NewCommentRepository(db *Connection) *CommentRepository {
	return &CommentRepository{db: db}
}

func scanComment(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID, &c.AuthorID, &c.Author.Username, &c.Author.Name, &c.Author.ProfileImageURL, &c.Author.Verified,
		&c.TweetID, &c.Content, &c.Likes, &c.CreatedAt, &c.UpdatedAt,
	)
	c.Author.ID = c.AuthorID
	return c, err
}

// Create stores the comment. It returns model.ErrNotFound if the tweet is gone.
func (r *CommentRepository) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	const query = `
		INSERT INTO comments (id, author_id, tweet_id, content)
		VALUES ($1, $2, $3, $4)
	`

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	if _, err := r.db.Exec(ctx, query, comment.ID, comment.AuthorID, comment.TweetID, comment.Content); err != nil {
		if isForeignKeyViolation(err) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	return r.GetByID(ctx, comment.ID)
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return comment, nil
}

// ListByTweet returns the tweet's comments, newest first.
func (r *CommentRepository) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx, commentSelect+` WHERE c.tweet_id = $1 ORDER BY c.created_at DESC`, tweetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Comment, error) {
		return scanComment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan comments: %w", err)
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (model.ToggleResult, error) {
	var result model.ToggleResult
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, "comments", commentID); err != nil {
			return err
		}

		var err error
		result.Active, err = toggleMembership(ctx, tx, "comment_likes", "comment_id", commentID, userID)
		if err != nil {
			return err
		}

		result.IDs, err = listIDs(ctx, tx,
			`SELECT user_id FROM comment_likes WHERE comment_id = $1 ORDER BY created_at DESC`, commentID)
		return err
	})
	if err != nil {
		return model.ToggleResult{}, err
	}

	return result, nil
}
