package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/metrics"
	"github.com/dtroode/chirper-server/internal/model"
)

type User struct {
	userStore   model.UserStore
	followStore model.FollowStore
	media       model.MediaStore
	metrics     *metrics.Collector
	logger      *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	followStore model.FollowStore,
	media model.MediaStore,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *User {
	return &User{
		userStore:   userStore,
		followStore: followStore,
		media:       media,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *User) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierror.NewErrUserNotFound(id.String())
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetProfile returns the user with its following and followers resolved.
func (s *User) GetProfile(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	following, err := s.Following(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	followers, err := s.Followers(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	return model.Profile{User: user, FollowingUsers: following, FollowerUsers: followers}, nil
}

func (s *User) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = canonical(username)

	user, err := s.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierror.NewErrUserNotFound(username)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial patch. New images are uploaded first; if
// the update fails they are removed again, and once it succeeds the images
// they replace are removed.
func (s *User) UpdateProfile(ctx context.Context, params model.UpdateProfileParams) (user model.User, err error) {
	ctx, span := startSpan(ctx, "User.UpdateProfile")
	defer func() { endSpan(span, err) }()

	if err := validateProfilePatch(params.Patch); err != nil {
		return model.User{}, err
	}

	current, err := s.GetByID(ctx, params.UserID)
	if err != nil {
		return model.User{}, err
	}

	patch := params.Patch
	var uploaded, replaced []string

	if params.ProfileImage != nil {
		url, err := s.store(ctx, model.FolderProfiles, *params.ProfileImage)
		if err != nil {
			return model.User{}, err
		}
		patch.ProfileImageURL = &url
		uploaded = append(uploaded, url)
		replaced = append(replaced, current.ProfileImageURL)
	}
	if params.CoverImage != nil {
		url, err := s.store(ctx, model.FolderCovers, *params.CoverImage)
		if err != nil {
			s.removeAll(ctx, uploaded)
			return model.User{}, err
		}
		patch.CoverImageURL = &url
		uploaded = append(uploaded, url)
		replaced = append(replaced, current.CoverImageURL)
	}

	if patch.IsEmpty() {
		return current, nil
	}

	user, err = s.userStore.Update(ctx, params.UserID, patch)
	if err != nil {
		s.removeAll(ctx, uploaded)
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, apierror.NewErrUserNotFound(params.UserID.String())
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.removeAll(ctx, replaced)
	s.logger.Debug("User service: profile updated", "user_id", user.ID)

	return user, nil
}

// ToggleFollow follows the target if the actor does not follow it yet and
// unfollows it otherwise.
func (s *User) ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (res model.ToggleResult, err error) {
	ctx, span := startSpan(ctx, "User.ToggleFollow")
	defer func() { endSpan(span, err) }()

	if actorID == targetID {
		return model.ToggleResult{}, apierror.NewErrSelfFollow()
	}

	if _, err := s.GetByID(ctx, targetID); err != nil {
		return model.ToggleResult{}, err
	}

	res, err = s.followStore.Toggle(ctx, actorID, targetID)
	switch {
	case errors.Is(err, model.ErrSelfFollow):
		return model.ToggleResult{}, apierror.NewErrSelfFollow()
	case errors.Is(err, model.ErrNotFound):
		return model.ToggleResult{}, apierror.NewErrUserNotFound(targetID.String())
	case err != nil:
		s.logger.Error("User service: failed to toggle follow",
			"actor_id", actorID,
			"target_id", targetID,
			"error", err.Error())
		return model.ToggleResult{}, fmt.Errorf("failed to toggle follow: %w", err)
	}

	s.metrics.Toggle("follow", res.Active)
	return res, nil
}

// Suggestions lists up to five users the caller does not follow yet.
func (s *User) Suggestions(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	users, err := s.userStore.Suggestions(ctx, userID, model.SuggestionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	return users, nil
}

func (s *User) Followers(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	return s.listEdges(ctx, userID, s.followStore.ListFollowers)
}

func (s *User) Following(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error) {
	return s.listEdges(ctx, userID, s.followStore.ListFollowing)
}

func (s *User) listEdges(
	ctx context.Context,
	userID uuid.UUID,
	list func(context.Context, uuid.UUID) ([]model.UserSummary, error),
) ([]model.UserSummary, error) {
	users, err := list(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierror.NewErrUserNotFound(userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list follow edges: %w", err)
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	return users, nil
}

func (s *User) store(ctx context.Context, folder string, file model.Upload) (string, error) {
	url, err := s.media.Store(ctx, folder, file)
	s.metrics.MediaUpload(folder, err)
	if err != nil {
		s.logger.Error("User service: failed to store image", "folder", folder, "error", err.Error())
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return url, nil
}

func (s *User) removeAll(ctx context.Context, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.media.Remove(ctx, url); err != nil {
			s.logger.Warn("User service: failed to remove image", "url", url, "error", err.Error())
		}
	}
}
