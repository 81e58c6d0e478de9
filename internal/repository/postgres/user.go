package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/chirper-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

// userColumns never includes password_hash; edge sets are derived from follows.
const userColumns = `
	u.id, u.username, u.email, u.name, u.profile_image_url, u.cover_image_url,
	u.bio, u.location, u.website, u.verified, u.created_at, u.updated_at,
	ARRAY(SELECT f.followee_id FROM follows f WHERE f.follower_id = u.id ORDER BY f.created_at DESC),
	ARRAY(SELECT f.follower_id FROM follows f WHERE f.followee_id = u.id ORDER BY f.created_at DESC)`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Name, &user.ProfileImageURL, &user.CoverImageURL,
		&user.Bio, &user.Location, &user.Website, &user.Verified, &user.CreatedAt, &user.UpdatedAt,
		&user.Following, &user.Followers,
	)
	return user, err
}

func (r *UserRepository) Create(ctx context.Context, user model.User, session *model.Session) (model.User, error) {
	const query = `
		INSERT INTO users (id, username, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, user.ID, user.Username, user.Email, user.Name, user.PasswordHash); err != nil {
			return err
		}
		if session == nil {
			return nil
		}
		session.UserID = user.ID
		return insertSession(ctx, tx, *session)
	})
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			switch constraint {
			case constraintUsername:
				return model.User{}, model.ErrUsernameExists
			case constraintEmail:
				return model.User{}, model.ErrEmailExists
			default:
				return model.User{}, model.ErrAlreadyExists
			}
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return r.GetByID(ctx, user.ID)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (model.Credentials, error) {
	const query = `SELECT id, password_hash FROM users WHERE email = $1`

	var creds model.Credentials
	err := r.db.QueryRow(ctx, query, email).Scan(&creds.UserID, &creds.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credentials{}, model.ErrNotFound
		}
		return model.Credentials{}, fmt.Errorf("failed to get credentials by email: %w", err)
	}

	return creds, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (model.User, error) {
	const query = `
		UPDATE users SET
			name = COALESCE($2, name),
			bio = COALESCE($3, bio),
			location = COALESCE($4, location),
			website = COALESCE($5, website),
			profile_image_url = COALESCE($6, profile_image_url),
			cover_image_url = COALESCE($7, cover_image_url),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id,
		patch.Name, patch.Bio, patch.Location, patch.Website, patch.ProfileImageURL, patch.CoverImageURL,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.User{}, model.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepository) Suggestions(ctx context.Context, userID uuid.UUID, limit int) ([]model.UserSummary, error) {
	const query = `
		SELECT u.id, u.username, u.name, u.profile_image_url, u.verified
		FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.followee_id = u.id)
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}

	return collectSummaries(rows)
}

func collectSummaries(rows pgx.Rows) ([]model.UserSummary, error) {
	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.UserSummary, error) {
		var s model.UserSummary
		err := row.Scan(&s.ID, &s.Username, &s.Name, &s.ProfileImageURL, &s.Verified)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}
	return summaries, nil
}
