package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/chirper-server/internal/apierror"
	"github.com/dtroode/chirper-server/internal/model"
)

func newCommentHandler(svc *MockCommentService) *Comment {
	return NewComment(svc, contextManager(), newErrors())
}

func TestComment_Create(t *testing.T) {
	actor := uuid.New()
	tweetID := uuid.New()

	tests := []struct {
		name       string
		path       string
		setupMock  func(*MockCommentService)
		wantStatus int
	}{
		{
			name: "success",
			path: "/tweets/" + tweetID.String() + "/comments",
			setupMock: func(m *MockCommentService) {
				m.On("Create", mock.Anything, model.CreateCommentParams{AuthorID: actor, TweetID: tweetID, Content: "nice"}).
					Return(model.Comment{ID: uuid.New(), TweetID: tweetID, Content: "nice"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "tweet missing",
			path: "/tweets/" + tweetID.String() + "/comments",
			setupMock: func(m *MockCommentService) {
				m.On("Create", mock.Anything, mock.Anything).Return(model.Comment{}, apierror.NewErrTweetNotFound(tweetID))
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "malformed tweet id", path: "/tweets/nope/comments", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCommentService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			rec := serve(t, http.MethodPost, "/tweets/{id}/comments", newCommentHandler(svc).Create,
				jsonRequest(t, http.MethodPost, tt.path, map[string]string{"content": "nice"}), model.Identity{UserID: actor})

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestComment_ListDeleteLike(t *testing.T) {
	actor := uuid.New()
	tweetID := uuid.New()
	commentID := uuid.New()

	svc := &MockCommentService{}
	svc.On("ListByTweet", mock.Anything, tweetID).Return([]model.Comment{{ID: commentID}}, nil)
	svc.On("Delete", mock.Anything, actor, commentID).Return(nil)
	svc.On("ToggleLike", mock.Anything, actor, commentID).Return(model.ToggleResult{Active: true, IDs: []uuid.UUID{actor}}, nil)
	h := newCommentHandler(svc)

	rec := serve(t, http.MethodGet, "/tweets/{id}/comments", h.ListByTweet,
		jsonRequest(t, http.MethodGet, "/tweets/"+tweetID.String()+"/comments", nil), model.Identity{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]commentResponse](t, rec), 1)

	rec = serve(t, http.MethodDelete, "/comments/{id}", h.Delete,
		jsonRequest(t, http.MethodDelete, "/comments/"+commentID.String(), nil), model.Identity{UserID: actor})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, deleteCommentResponse{ID: commentID}, decodeBody[deleteCommentResponse](t, rec))

	rec = serve(t, http.MethodPost, "/comments/{id}/like", h.ToggleLike,
		jsonRequest(t, http.MethodPost, "/comments/"+commentID.String()+"/like", nil), model.Identity{UserID: actor})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[likeResponse](t, rec).Liked)

	svc.AssertExpectations(t)
}

func TestComment_DeleteNotAuthor(t *testing.T) {
	actor := uuid.New()
	commentID := uuid.New()

	svc := &MockCommentService{}
	svc.On("Delete", mock.Anything, actor, commentID).Return(apierror.NewErrNotCommentAuthor(commentID))

	rec := serve(t, http.MethodDelete, "/comments/{id}", newCommentHandler(svc).Delete,
		jsonRequest(t, http.MethodDelete, "/comments/"+commentID.String(), nil), model.Identity{UserID: actor})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
