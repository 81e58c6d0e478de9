package handler

import (
	"net/http"

	"github.com/dtroode/chirper-server/internal/api/http/middleware"
	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/model"
)

// Comment serves comments under tweets.
type Comment struct {
	base
	commentService CommentService
}

func NewComment(commentService CommentService, contextManager model.ContextManager, errors *response.Errors) *Comment {
	return &Comment{
		base:           base{contextManager: contextManager, errors: errors},
		commentService: commentService,
	}
}

// Create handles POST /tweets/{id}/comments.
func (h *Comment) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	tweetID, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	comment, err := h.commentService.Create(r.Context(), model.CreateCommentParams{
		AuthorID: identity.UserID,
		TweetID:  tweetID,
		Content:  req.Content,
	})
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toCommentResponse(comment))
}

// ListByTweet handles GET /tweets/{id}/comments.
func (h *Comment) ListByTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := middleware.PathUUID(r, "id")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	comments, err := h.commentService.ListByTweet(r.Context(), tweetID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, toCommentResponses(comments))
}

// Delete handles DELETE /comments/{id}.
func (h *Comment) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.commentService.Delete(r.Context(), identity.UserID, id); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, deleteCommentResponse{ID: id})
}

// ToggleLike handles POST /comments/{id}/like.
func (h *Comment) ToggleLike(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.commentService.ToggleLike(r.Context(), identity.UserID, id)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, likeResponse{Liked: res.Active, Likes: ids(res.IDs)})
}
