package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/chirper-server/internal/model"
	"github.com/dtroode/chirper-server/internal/testutil"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error

	putErr   error
	putCalls int
	putKey   string
	putOpts  minioLib.PutObjectOptions
	putBody  []byte

	removeErr error
	removeKey string
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putCalls++
	f.putKey = key
	f.putOpts = opts
	f.putBody, _ = io.ReadAll(r)
	return minioLib.UploadInfo{Key: key}, f.putErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removeKey = key
	return f.removeErr
}

func newTestClient(t *testing.T, api *fakeMinio) *Client {
	t.Helper()
	api.bucketExists = true
	c, err := NewClientWithAPI(context.Background(), api, Options{
		Bucket:        "media",
		PublicBaseURL: "http://cdn.local/media/",
		MaxFailures:   2,
		OpenTimeout:   time.Minute,
	}, testutil.DiscardLogger())
	require.NoError(t, err)
	return c
}

func TestNewClientWithAPI(t *testing.T) {
	tests := []struct {
		name    string
		api     *fakeMinio
		wantErr bool
	}{
		{name: "bucket exists", api: &fakeMinio{bucketExists: true}},
		{name: "bucket created", api: &fakeMinio{bucketExists: false}},
		{name: "exists check fails", api: &fakeMinio{bucketExistsErr: errors.New("boom")}, wantErr: true},
		{name: "make bucket fails", api: &fakeMinio{makeBucketErr: errors.New("fail")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClientWithAPI(context.Background(), tt.api, Options{Bucket: "b"}, testutil.DiscardLogger())
			if tt.wantErr {
				assert.Nil(t, c)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to ensure bucket exists")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "b", c.bucket)
		})
	}
}

func TestClient_Store(t *testing.T) {
	api := &fakeMinio{}
	c := newTestClient(t, api)

	url, err := c.Store(context.Background(), model.FolderTweets, model.Upload{
		Reader:      bytes.NewReader([]byte("png-bytes")),
		Size:        9,
		Filename:    "Photo.PNG",
		ContentType: "image/png",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(api.putKey, "tweets/"))
	assert.True(t, strings.HasSuffix(api.putKey, ".png"))
	assert.Equal(t, "image/png", api.putOpts.ContentType)
	assert.Equal(t, []byte("png-bytes"), api.putBody)
	assert.Equal(t, "http://cdn.local/media/"+api.putKey, url)
}

func TestClient_Store_BreakerOpens(t *testing.T) {
	api := &fakeMinio{putErr: errors.New("put-fail")}
	c := newTestClient(t, api)
	upload := func() error {
		_, err := c.Store(context.Background(), model.FolderCovers, model.Upload{Reader: bytes.NewReader(nil), Filename: "a.jpg"})
		return err
	}

	require.Error(t, upload())
	require.Error(t, upload())

	err := upload()
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, api.putCalls)
}

func TestClient_Remove(t *testing.T) {
	t.Run("own url", func(t *testing.T) {
		api := &fakeMinio{}
		c := newTestClient(t, api)

		require.NoError(t, c.Remove(context.Background(), "http://cdn.local/media/profiles/x.jpg"))
		assert.Equal(t, "profiles/x.jpg", api.removeKey)
	})

	t.Run("foreign url", func(t *testing.T) {
		c := newTestClient(t, &fakeMinio{})
		err := c.Remove(context.Background(), "https://elsewhere.example/x.jpg")
		require.ErrorIs(t, err, ErrForeignURL)
	})

	t.Run("error", func(t *testing.T) {
		c := newTestClient(t, &fakeMinio{removeErr: errors.New("remove-fail")})
		err := c.Remove(context.Background(), "http://cdn.local/media/tweets/x.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}

func TestClient_Ready(t *testing.T) {
	api := &fakeMinio{}
	c := newTestClient(t, api)
	require.NoError(t, c.Ready(context.Background()))

	api.bucketExists = false
	require.Error(t, c.Ready(context.Background()))

	api.bucketExistsErr = errors.New("down")
	require.Error(t, c.Ready(context.Background()))
}
