package handler

import (
	"net/http"

	"github.com/dtroode/chirper-server/internal/api/http/middleware"
	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

// Tweet serves tweets, likes and retweets.
type Tweet struct {
	base
	tweetService   TweetService
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewTweet(
	tweetService TweetService,
	contextManager model.ContextManager,
	errors *response.Errors,
	maxUploadBytes int64,
	logger *logger.Logger,
) *Tweet {
	return &Tweet{
		base:           base{contextManager: contextManager, errors: errors},
		tweetService:   tweetService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With("handler", "tweet"),
	}
}

// Create handles POST /tweets with a JSON body or a multipart form with an image.
func (h *Tweet) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	params := model.CreateTweetParams{AuthorID: identity.UserID}

	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartMemory)
		if err := parseMultipart(r); err != nil {
			h.errors.Write(w, r, err)
			return
		}
		defer removeForm(r, h.logger)

		if content, ok := formValue(r, "content"); ok {
			params.Content = *content
		}

		image, closeImage, err := formImage(r, "image")
		if err != nil {
			h.errors.Write(w, r, err)
			return
		}
		defer closeImage()

		if err := checkUploadSize("image", image, h.maxUploadBytes); err != nil {
			h.errors.Write(w, r, err)
			return
		}
		params.Image = image
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
		var req contentRequest
		if err := decodeJSON(r, &req); err != nil {
			h.errors.Write(w, r, err)
			return
		}
		params.Content = req.Content
	}

	tweet, err := h.tweetService.Create(r.Context(), params)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toTweetResponse(tweet))
}

// List handles GET /tweets.
func (h *Tweet) List(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.tweetService.ListRecent(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, toTweetResponses(tweets))
}

// Timeline handles GET /tweets/timeline.
func (h *Tweet) Timeline(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	tweets, err := h.tweetService.Timeline(r.Context(), identity.UserID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, toTweetResponses(tweets))
}

// ListByAuthor handles GET /tweets/user/{userId}.
func (h *Tweet) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := middleware.PathUUID(r, "userId")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	tweets, err := h.tweetService.ListByAuthor(r.Context(), authorID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, toTweetResponses(tweets))
}

// Get handles GET /tweets/{id}.
func (h *Tweet) Get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	tweet, err := h.tweetService.Get(r.Context(), id)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, toTweetResponse(tweet))
}

// Delete handles DELETE /tweets/{id}.
func (h *Tweet) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	res, err := h.tweetService.Delete(r.Context(), identity.UserID, id)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, deleteTweetResponse{ID: res.ID, DeletedComments: res.DeletedComments})
}

// ToggleLike handles POST /tweets/{id}/like.
func (h *Tweet) ToggleLike(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	res, err := h.tweetService.ToggleLike(r.Context(), identity.UserID, id)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, likeResponse{Liked: res.Active, Likes: ids(res.IDs)})
}

// ToggleRetweet handles POST /tweets/{id}/retweet.
func (h *Tweet) ToggleRetweet(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	res, err := h.tweetService.ToggleRetweet(r.Context(), identity.UserID, id)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, retweetResponse{Retweeted: res.Active, Retweets: ids(res.IDs)})
}
