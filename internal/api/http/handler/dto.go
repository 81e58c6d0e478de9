package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/chirper-server/internal/model"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
	Website  *string `json:"website"`
}

type contentRequest struct {
	Content string `json:"content"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

// userResponse is the public profile; it has no password field at all.
type userResponse struct {
	ID              uuid.UUID   `json:"id"`
	Username        string      `json:"username"`
	Email           string      `json:"email,omitempty"`
	Name            string      `json:"name"`
	ProfileImageURL string      `json:"profileImage"`
	CoverImageURL   string      `json:"coverImage"`
	Bio             string      `json:"bio"`
	Location        string      `json:"location"`
	Website         string      `json:"website"`
	Verified        bool        `json:"verified"`
	Following       []uuid.UUID `json:"following"`
	Followers       []uuid.UUID `json:"followers"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// profileResponse is the owner's view of a profile with both edge sets
// rendered as user summaries instead of ids.
type profileResponse struct {
	userResponse
	Following []userSummaryResponse `json:"following"`
	Followers []userSummaryResponse `json:"followers"`
}

type userSummaryResponse struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	ProfileImageURL string    `json:"profileImage"`
	Verified        bool      `json:"verified"`
}

type tweetResponse struct {
	ID        uuid.UUID           `json:"id"`
	Author    userSummaryResponse `json:"author"`
	Content   string              `json:"content"`
	ImageURL  string              `json:"image,omitempty"`
	Likes     []uuid.UUID         `json:"likes"`
	Retweets  []uuid.UUID         `json:"retweets"`
	Comments  []uuid.UUID         `json:"comments"`
	IsRetweet bool                `json:"isRetweet"`
	ParentID  *uuid.UUID          `json:"parentId,omitempty"`
	Parent    *tweetResponse      `json:"parent,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type commentResponse struct {
	ID        uuid.UUID           `json:"id"`
	Author    userSummaryResponse `json:"author"`
	TweetID   uuid.UUID           `json:"tweetId"`
	Content   string              `json:"content"`
	Likes     []uuid.UUID         `json:"likes"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type followResponse struct {
	Followed  bool        `json:"followed"`
	Following []uuid.UUID `json:"following"`
}

type likeResponse struct {
	Liked bool        `json:"liked"`
	Likes []uuid.UUID `json:"likes"`
}

type retweetResponse struct {
	Retweeted bool        `json:"retweeted"`
	Retweets  []uuid.UUID `json:"retweets"`
}

type deleteTweetResponse struct {
	ID              uuid.UUID `json:"id"`
	DeletedComments int64     `json:"deletedComments"`
}

type deleteCommentResponse struct {
	ID uuid.UUID `json:"id"`
}

// ids keeps empty sets as [] instead of null on the wire.
func ids(in []uuid.UUID) []uuid.UUID {
	if in == nil {
		return []uuid.UUID{}
	}
	return in
}

// toUserResponse renders a profile. The email is only shown to its owner.
func toUserResponse(u model.User, withEmail bool) userResponse {
	resp := userResponse{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		ProfileImageURL: u.ProfileImageURL,
		CoverImageURL:   u.CoverImageURL,
		Bio:             u.Bio,
		Location:        u.Location,
		Website:         u.Website,
		Verified:        u.Verified,
		Following:       ids(u.Following),
		Followers:       ids(u.Followers),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if withEmail {
		resp.Email = u.Email
	}
	return resp
}

func toProfileResponse(p model.Profile) profileResponse {
	return profileResponse{
		userResponse: toUserResponse(p.User, true),
		Following:    toUserSummaries(p.FollowingUsers),
		Followers:    toUserSummaries(p.FollowerUsers),
	}
}

func toUserSummary(u model.UserSummary) userSummaryResponse {
	return userSummaryResponse{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		ProfileImageURL: u.ProfileImageURL,
		Verified:        u.Verified,
	}
}

func toUserSummaries(in []model.UserSummary) []userSummaryResponse {
	out := make([]userSummaryResponse, 0, len(in))
	for _, u := range in {
		out = append(out, toUserSummary(u))
	}
	return out
}

func toTweetResponse(t model.Tweet) tweetResponse {
	resp := tweetResponse{
		ID:        t.ID,
		Author:    toUserSummary(t.Author),
		Content:   t.Content,
		ImageURL:  t.ImageURL,
		Likes:     ids(t.Likes),
		Retweets:  ids(t.Retweets),
		Comments:  ids(t.Comments),
		IsRetweet: t.IsRetweet,
		ParentID:  t.ParentID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Parent != nil {
		parent := toTweetResponse(*t.Parent)
		resp.Parent = &parent
	}
	return resp
}

func toTweetResponses(in []model.Tweet) []tweetResponse {
	out := make([]tweetResponse, 0, len(in))
	for _, t := range in {
		out = append(out, toTweetResponse(t))
	}
	return out
}

func toCommentResponse(c model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Author:    toUserSummary(c.Author),
		TweetID:   c.TweetID,
		Content:   c.Content,
		Likes:     ids(c.Likes),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentResponses(in []model.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(in))
	for _, c := range in {
		out = append(out, toCommentResponse(c))
	}
	return out
}
