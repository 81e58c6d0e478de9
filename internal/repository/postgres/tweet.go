package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/chirper-server/internal/model"
)

var _ model.TweetStore = (*TweetRepository)(nil)

// tweetSelect joins the author summary and derives the engagement sets.
const tweetSelect = `
	SELECT t.id, t.author_id, u.username, u.name, u.profile_image_url, u.verified,
		t.content, t.image_url,
		ARRAY(SELECT l.user_id FROM tweet_likes l WHERE l.tweet_id = t.id ORDER BY l.created_at DESC),
		ARRAY(SELECT r.user_id FROM tweet_retweets r WHERE r.tweet_id = t.id ORDER BY r.created_at DESC),
		ARRAY(SELECT c.id FROM comments c WHERE c.tweet_id = t.id ORDER BY c.created_at ASC),
		t.parent_id, t.is_retweet, t.created_at, t.updated_at
	FROM tweets t
	JOIN users u ON u.id = t.author_id`

type TweetRepository struct {
	db *Connection
}

func NewTweetRepository(db *Connection) *TweetRepository {
	return &TweetRepository{db: db}
}

func scanTweet(row pgx.Row) (model.Tweet, error) {
	var t model.Tweet
	err := row.Scan(
		&t.ID, &t.AuthorID, &t.Author.Username, &t.Author.Name, &t.Author.ProfileImageURL, &t.Author.Verified,
		&t.Content, &t.ImageURL, &t.Likes, &t.Retweets, &t.Comments,
		&t.ParentID, &t.IsRetweet, &t.CreatedAt, &t.UpdatedAt,
	)
	t.Author.ID = t.AuthorID
	return t, err
}

func (r *TweetRepository) Create(ctx context.Context, tweet model.Tweet) (model.Tweet, error) {
	const query = `
		INSERT INTO tweets (id, author_id, content, image_url, parent_id, is_retweet)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if tweet.ID == uuid.Nil {
		tweet.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query, tweet.ID, tweet.AuthorID, tweet.Content, tweet.ImageURL, tweet.ParentID, tweet.IsRetweet)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Tweet{}, model.ErrNotFound
		}
		return model.Tweet{}, fmt.Errorf("failed to create tweet: %w", err)
	}

	return r.GetByID(ctx, tweet.ID)
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Tweet, error) {
	tweet, err := scanTweet(r.db.QueryRow(ctx, tweetSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Tweet{}, model.ErrNotFound
		}
		return model.Tweet{}, fmt.Errorf("failed to get tweet by id: %w", err)
	}

	tweets := []model.Tweet{tweet}
	if err := r.attachParents(ctx, tweets); err != nil {
		return model.Tweet{}, err
	}
	return tweets[0], nil
}

func (r *TweetRepository) ListRecent(ctx context.Context, limit int) ([]model.Tweet, error) {
	return r.list(ctx, tweetSelect+` ORDER BY t.created_at DESC LIMIT $1`, limit)
}

// ListTimeline returns the viewer's own tweets and those of accounts the viewer follows.
func (r *TweetRepository) ListTimeline(ctx context.Context, viewerID uuid.UUID, limit int) ([]model.Tweet, error) {
	query := tweetSelect + `
		WHERE t.author_id = $1
		   OR t.author_id IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = $1)
		ORDER BY t.created_at DESC
		LIMIT $2`
	return r.list(ctx, query, viewerID, limit)
}

func (r *TweetRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Tweet, error) {
	return r.list(ctx, tweetSelect+` WHERE t.author_id = $1 ORDER BY t.created_at DESC`, authorID)
}

func (r *TweetRepository) list(ctx context.Context, query string, args ...any) ([]model.Tweet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}

	tweets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Tweet, error) {
		return scanTweet(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tweets: %w", err)
	}
	if tweets == nil {
		tweets = []model.Tweet{}
	}

	if err := r.attachParents(ctx, tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// attachParents embeds the original tweet into every retweet of tweets.
func (r *TweetRepository) attachParents(ctx context.Context, tweets []model.Tweet) error {
	var parentIDs []uuid.UUID
	for _, t := range tweets {
		if t.ParentID != nil {
			parentIDs = append(parentIDs, *t.ParentID)
		}
	}
	if len(parentIDs) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, tweetSelect+` WHERE t.id = ANY($1)`, parentIDs)
	if err != nil {
		return fmt.Errorf("failed to load parent tweets: %w", err)
	}
	parents, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Tweet, error) {
		return scanTweet(row)
	})
	if err != nil {
		return fmt.Errorf("failed to scan parent tweets: %w", err)
	}

	byID := make(map[uuid.UUID]model.Tweet, len(parents))
	for _, p := range parents {
		byID[p.ID] = p
	}
	for i := range tweets {
		if tweets[i].ParentID == nil {
			continue
		}
		if p, ok := byID[*tweets[i].ParentID]; ok {
			tweets[i].Parent = &p
		}
	}
	return nil
}

// Delete removes the tweet and its comments in one transaction and returns the
// number of removed comments. Retweets of the tweet go with it. Deleting a
// retweet also drops its author from the original's retweets.
func (r *TweetRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var deletedComments int64
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		var (
			authorID  uuid.UUID
			isRetweet bool
			parentID  *uuid.UUID
		)
		// These columns never change, so reading them unlocked lets the parent
		// row be locked before this one.
		err := tx.QueryRow(ctx,
			`SELECT author_id, is_retweet, parent_id FROM tweets WHERE id = $1`, id,
		).Scan(&authorID, &isRetweet, &parentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to get tweet: %w", err)
		}

		if isRetweet && parentID != nil {
			if err := lockRow(ctx, tx, "tweets", *parentID); err != nil && !errors.Is(err, model.ErrNotFound) {
				return err
			}
			if _, err := tx.Exec(ctx,
				`DELETE FROM tweet_retweets WHERE tweet_id = $1 AND user_id = $2`,
				*parentID, authorID,
			); err != nil {
				return fmt.Errorf("failed to delete retweet membership: %w", err)
			}
		}

		if err := lockRow(ctx, tx, "tweets", id); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE tweet_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		deletedComments = tag.RowsAffected()

		if _, err := tx.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete tweet: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deletedComments, nil
}

func (r *TweetRepository) ToggleLike(ctx context.Context, tweetID, userID uuid.UUID) (model.ToggleResult, error) {
	var result model.ToggleResult
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, "tweets", tweetID); err != nil {
			return err
		}

		var err error
		result.Active, err = toggleMembership(ctx, tx, "tweet_likes", "tweet_id", tweetID, userID)
		if err != nil {
			return err
		}

		result.IDs, err = listIDs(ctx, tx,
			`SELECT user_id FROM tweet_likes WHERE tweet_id = $1 ORDER BY created_at DESC`, tweetID)
		return err
	})
	if err != nil {
		return model.ToggleResult{}, err
	}

	return result, nil
}

// ToggleRetweet flips the user's retweet of tweetID. A retweet of a retweet
// targets the original tweet. Turning it on creates a retweet tweet owned by
// the user; turning it off removes that tweet.
func (r *TweetRepository) ToggleRetweet(ctx context.Context, tweetID, userID uuid.UUID) (model.ToggleResult, error) {
	var result model.ToggleResult
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		var (
			isRetweet bool
			parentID  *uuid.UUID
		)
		// Only the original is locked, matching the order Delete uses.
		err := tx.QueryRow(ctx,
			`SELECT is_retweet, parent_id FROM tweets WHERE id = $1`, tweetID,
		).Scan(&isRetweet, &parentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to get tweet: %w", err)
		}

		target := tweetID
		if isRetweet && parentID != nil {
			target = *parentID
		}
		if err := lockRow(ctx, tx, "tweets", target); err != nil {
			return err
		}

		result.Active, err = toggleMembership(ctx, tx, "tweet_retweets", "tweet_id", target, userID)
		if err != nil {
			return err
		}

		if result.Active {
			_, err = tx.Exec(ctx,
				`INSERT INTO tweets (id, author_id, content, image_url, parent_id, is_retweet)
				 VALUES ($1, $2, '', '', $3, TRUE)`,
				uuid.New(), userID, target,
			)
			if err != nil {
				return fmt.Errorf("failed to create retweet: %w", err)
			}
		} else {
			_, err = tx.Exec(ctx,
				`DELETE FROM tweets WHERE author_id = $1 AND parent_id = $2 AND is_retweet`,
				userID, target,
			)
			if err != nil {
				return fmt.Errorf("failed to delete retweet: %w", err)
			}
		}

		result.IDs, err = listIDs(ctx, tx,
			`SELECT user_id FROM tweet_retweets WHERE tweet_id = $1 ORDER BY created_at DESC`, target)
		return err
	})
	if err != nil {
		return model.ToggleResult{}, err
	}

	return result, nil
}

// toggleMembership deletes (target, user) from table if present and inserts it
// otherwise. It reports whether the user is now a member. The caller must hold
// a lock on the target row.
func toggleMembership(ctx context.Context, tx pgx.Tx, table, targetColumn string, targetID, userID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx,
		`DELETE FROM `+table+` WHERE `+targetColumn+` = $1 AND user_id = $2`,
		targetID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO `+table+` (`+targetColumn+`, user_id) VALUES ($1, $2)`,
		targetID, userID,
	); err != nil {
		if isForeignKeyViolation(err) {
			return false, model.ErrNotFound
		}
		return false, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return true, nil
}
