package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sony/gobreaker"

	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

// ErrForeignURL is returned by Remove for URLs that do not point into the bucket.
var ErrForeignURL = errors.New("url does not belong to media bucket")

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ model.MediaStore = (*Client)(nil)

// Options configure the media client.
type Options struct {
	Bucket        string
	PublicBaseURL string
	// Breaker settings; zero values fall back to defaults.
	MaxFailures uint32
	OpenTimeout time.Duration
}

type Client struct {
	api     minioAPI
	bucket  string
	baseURL string
	breaker *gobreaker.CircuitBreaker
	newKey  func(folder, filename string) string
}

// NewClient creates a new MinIO media client using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, opts Options, log *logger.Logger) (*Client, error) {
	return NewClientWithAPI(ctx, client, opts, log)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, opts Options, log *logger.Logger) (*Client, error) {
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 5
	}
	if opts.OpenTimeout == 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	c := &Client{
		api:     api,
		bucket:  opts.Bucket,
		baseURL: strings.TrimSuffix(opts.PublicBaseURL, "/"),
		newKey:  objectKey,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "media-store",
		Timeout: opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("MediaStore: circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// objectKey builds folder/<uuid><ext>, keeping the client's file extension.
func objectKey(folder, filename string) string {
	return path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

// Store uploads the file under folder and returns its public URL.
func (c *Client) Store(ctx context.Context, folder string, file model.Upload) (string, error) {
	key := c.newKey(folder, file.Filename)
	size := file.Size
	if size <= 0 {
		size = -1
	}

	_, err := c.breaker.Execute(func() (any, error) {
		return c.api.PutObject(ctx, c.bucket, key, file.Reader, size, minio.PutObjectOptions{
			ContentType: file.ContentType,
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return c.baseURL + "/" + key, nil
}

// Remove deletes the object a URL returned by Store points to.
func (c *Client) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, c.baseURL+"/")
	if !ok || key == "" {
		return ErrForeignURL
	}

	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Ready reports whether the bucket is reachable.
func (c *Client) Ready(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", c.bucket)
	}
	return nil
}
