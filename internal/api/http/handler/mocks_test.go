package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/chirper-server/internal/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, params model.LoginParams) (model.AuthResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.AuthResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, identity model.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockAuthService) LogoutAll(ctx context.Context, identity model.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, params model.UpdateProfileParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, actorID, targetID)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}

func (m *MockUserService) Suggestions(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockUserService) Followers(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockUserService) Following(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

type MockTweetService struct {
	mock.Mock
}

func (m *MockTweetService) Create(ctx context.Context, params model.CreateTweetParams) (model.Tweet, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetService) Get(ctx context.Context, id uuid.UUID) (model.Tweet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetService) ListRecent(ctx context.Context) ([]model.Tweet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetService) Timeline(ctx context.Context, viewerID uuid.UUID) ([]model.Tweet, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Tweet, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetService) Delete(ctx context.Context, actorID, id uuid.UUID) (model.DeleteTweetResult, error) {
	args := m.Called(ctx, actorID, id)
	return args.Get(0).(model.DeleteTweetResult), args.Error(1)
}

func (m *MockTweetService) ToggleLike(ctx context.Context, actorID, id uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, actorID, id)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}

func (m *MockTweetService) ToggleRetweet(ctx context.Context, actorID, id uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, actorID, id)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, params model.CreateCommentParams) (model.Comment, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentService) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, tweetID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *MockCommentService) ToggleLike(ctx context.Context, actorID, id uuid.UUID) (model.ToggleResult, error) {
	args := m.Called(ctx, actorID, id)
	return args.Get(0).(model.ToggleResult), args.Error(1)
}
