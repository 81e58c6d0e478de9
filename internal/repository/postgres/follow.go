package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/chirper-server/internal/model"
)

var _ model.FollowStore = (*FollowRepository)(nil)

type FollowRepository struct {
	db *Connection
}

func NewFollowRepository(db *Connection) *FollowRepository {
	return &FollowRepository{db: db}
}

// Toggle removes the follower→followee edge if present and creates it otherwise.
// Both user rows are locked in id order so concurrent toggles between the same
// pair serialize instead of deadlocking.
func (r *FollowRepository) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (model.ToggleResult, error) {
	if followerID == followeeID {
		return model.ToggleResult{}, model.ErrSelfFollow
	}

	var result model.ToggleResult
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE`,
			[]uuid.UUID{followerID, followeeID},
		)
		if err != nil {
			return fmt.Errorf("failed to lock users: %w", err)
		}
		locked, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
		if err != nil {
			return fmt.Errorf("failed to lock users: %w", err)
		}
		if len(locked) != 2 {
			return model.ErrNotFound
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
			followerID, followeeID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete follow: %w", err)
		}

		result.Active = tag.RowsAffected() == 0
		if result.Active {
			if _, err := tx.Exec(ctx,
				`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)`,
				followerID, followeeID,
			); err != nil {
				return fmt.Errorf("failed to insert follow: %w", err)
			}
		}

		result.IDs, err = listIDs(ctx, tx,
			`SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at DESC`, followerID)
		return err
	})
	if err != nil {
		return model.ToggleResult{}, err
	}

	return result, nil
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	const query = `
		SELECT u.id, u.username, u.name, u.profile_image_url, u.verified
		FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	const query = `
		SELECT u.id, u.username, u.name, u.profile_image_url, u.verified
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *FollowRepository) list(ctx context.Context, query string, userID uuid.UUID) ([]model.UserSummary, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow edges: %w", err)
	}
	return collectSummaries(rows)
}

// listIDs runs a single-column uuid query.
func listIDs(ctx context.Context, q querier, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan ids: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// lockRow locks one row of table by id. It returns model.ErrNotFound if the row is absent.
func lockRow(ctx context.Context, tx pgx.Tx, table string, id uuid.UUID) error {
	var locked uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to lock %s row: %w", table, err)
	}
	return nil
}
