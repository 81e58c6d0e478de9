package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/chirper-server/internal/api/http/middleware"
	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

// User serves profiles and follow edges.
type User struct {
	base
	userService    UserService
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewUser(
	userService UserService,
	contextManager model.ContextManager,
	errors *response.Errors,
	maxUploadBytes int64,
	logger *logger.Logger,
) *User {
	return &User{
		base:           base{contextManager: contextManager, errors: errors},
		userService:    userService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With("handler", "user"),
	}
}

// Me handles GET /users/me.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toProfileResponse(profile))
}

// GetByUsername handles GET /users/{username}.
func (h *User) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(user, false))
}

// Suggestions handles GET /users/suggestions.
func (h *User) Suggestions(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	users, err := h.userService.Suggestions(r.Context(), identity.UserID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toUserSummaries(users))
}

// Update handles PUT /users with either a JSON body or a multipart form
// carrying profileImage and coverImage files.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	params := model.UpdateProfileParams{UserID: identity.UserID}

	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes*2+multipartMemory)
		if err := parseMultipart(r); err != nil {
			h.errors.Write(w, r, err)
			return
		}
		defer removeForm(r, h.logger)

		params.Patch.Name, _ = formValue(r, "name")
		params.Patch.Bio, _ = formValue(r, "bio")
		params.Patch.Location, _ = formValue(r, "location")
		params.Patch.Website, _ = formValue(r, "website")

		profile, closeProfile, err := formImage(r, "profileImage")
		if err != nil {
			h.errors.Write(w, r, err)
			return
		}
		defer closeProfile()

		cover, closeCover, err := formImage(r, "coverImage")
		if err != nil {
			h.errors.Write(w, r, err)
			return
		}
		defer closeCover()

		if err := h.checkSize("profileImage", profile); err != nil {
			h.errors.Write(w, r, err)
			return
		}
		if err := h.checkSize("coverImage", cover); err != nil {
			h.errors.Write(w, r, err)
			return
		}
		params.ProfileImage = profile
		params.CoverImage = cover
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
		var req updateProfileRequest
		if err := decodeJSON(r, &req); err != nil {
			h.errors.Write(w, r, err)
			return
		}
		params.Patch = model.ProfilePatch{
			Name:     req.Name,
			Bio:      req.Bio,
			Location: req.Location,
			Website:  req.Website,
		}
	}

	user, err := h.userService.UpdateProfile(r.Context(), params)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(user, true))
}

// ToggleFollow handles POST /users/{id}/follow.
func (h *User) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	targetID, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	res, err := h.userService.ToggleFollow(r.Context(), identity.UserID, targetID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, followResponse{Followed: res.Active, Following: ids(res.IDs)})
}

// Followers handles GET /users/{id}/followers.
func (h *User) Followers(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.userService.Followers)
}

// Following handles GET /users/{id}/following.
func (h *User) Following(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.userService.Following)
}

func (h *User) listEdges(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID uuid.UUID) ([]model.UserSummary, error),
) {
	userID, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	users, err := list(r.Context(), userID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toUserSummaries(users))
}

func (h *User) checkSize(field string, upload *model.Upload) error {
	return checkUploadSize(field, upload, h.maxUploadBytes)
}
