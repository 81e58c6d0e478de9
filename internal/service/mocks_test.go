package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/chirper-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user model.User, session *model.Session) (model.User, error) {
	args := m.Called(ctx, user, session)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetCredentialsByEmail(ctx context.Context, email string) (model.Credentials, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Credentials), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (model.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Suggestions(ctx context.Context, userID uuid.UUID, limit int) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

// MockFollowStore mocks the FollowStore interface
type MockFollowStore struct {
	mock.Mock
}

func (m *MockFollowStore) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}

func (m *MockFollowStore) ListFollowing(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockFollowStore) ListFollowers(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

// MockTweetStore mocks the TweetStore interface
type MockTweetStore struct {
	mock.Mock
}

func (m *MockTweetStore) Create(ctx context.Context, tweet model.Tweet) (model.Tweet, error) {
	args := m.Called(ctx, tweet)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetStore) GetByID(ctx context.Context, id uuid.UUID) (model.Tweet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetStore) ListRecent(ctx context.Context, limit int) ([]model.Tweet, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetStore) ListTimeline(ctx context.Context, viewerID uuid.UUID, limit int) ([]model.Tweet, error) {
	args := m.Called(ctx, viewerID, limit)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Tweet, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTweetStore) ToggleLike(ctx context.Context, tweetID, userID uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, tweetID, userID)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}

func (m *MockTweetStore) ToggleRetweet(ctx context.Context, tweetID, userID uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, tweetID, userID)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}

// MockCommentStore mocks the CommentStore interface
type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentStore) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentStore) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, tweetID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentStore) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}

// MockSessionStore mocks the SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) GetByJTI(ctx context.Context, jti string) (model.Session, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *MockSessionStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *MockSessionStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(userID uuid.UUID) (model.IssuedToken, error) {
	args := m.Called(userID)
	return args.Get(0).(model.IssuedToken), args.Error(1)
}

func (m *MockTokenManager) Parse(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}

// MockMediaStore mocks the MediaStore interface
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Store(ctx context.Context, folder string, file model.Upload) (string, error) {
	args := m.Called(ctx, folder, file)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Remove(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockMediaStore) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
