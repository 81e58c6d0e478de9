package model

import (
	"context"
	"io"
)

// Media folders used as object key prefixes.
const (
	FolderTweets   = "tweets"
	FolderProfiles = "profiles"
	FolderCovers   = "covers"
)

// MediaStore stores uploaded images and returns their public URL.
type MediaStore interface {
	Store(ctx context.Context, folder string, file Upload) (string, error)
	Remove(ctx context.Context, url string) error
	Ready(ctx context.Context) error
}

// Upload is a file received from a client.
type Upload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}
