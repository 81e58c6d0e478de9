package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	tweets := NewTweetRepository(db)
	comments := NewCommentRepository(db)
	sessions := NewSessionRepository(db)

	assert.Same(t, db, users.db)
	assert.Same(t, db, follows.db)
	assert.Same(t, db, tweets.db)
	assert.Same(t, db, comments.db)
	assert.Same(t, db, sessions.db)
}

func TestUserColumns_ExcludePasswordHash(t *testing.T) {
	assert.NotContains(t, userColumns, "password_hash")
}
