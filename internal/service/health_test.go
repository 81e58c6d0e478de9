package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/chirper-server/internal/model"
)

type readyFunc func(ctx context.Context) error

func (f readyFunc) Ready(ctx context.Context) error { return f(ctx) }

func TestHealth_Ready(t *testing.T) {
	media := &MockMediaStore{}
	media.On("Ready", mock.Anything).Return(errors.New("bucket missing"))

	h := NewHealth(map[string]model.ReadinessChecker{
		"database": readyFunc(func(context.Context) error { return nil }),
		"media":    media,
	})

	err := h.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "media: bucket missing")
	assert.NotContains(t, err.Error(), "database")
}

func TestHealth_AllReady(t *testing.T) {
	h := NewHealth(map[string]model.ReadinessChecker{
		"database": readyFunc(func(context.Context) error { return nil }),
	})

	require.NoError(t, h.Ready(context.Background()))
}
