package apierror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestError_IsByKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "not found matches kind", err: NewErrTweetNotFound(uuid.New()), target: ErrNotFound, want: true},
		{name: "wrapped forbidden matches", err: fmt.Errorf("delete: %w", NewErrNotTweetAuthor(uuid.New())), target: ErrForbidden, want: true},
		{name: "conflict is not validation", err: NewErrEmailTaken("a@b.c"), target: ErrValidation, want: false},
		{name: "self follow is invalid operation", err: NewErrSelfFollow(), target: ErrInvalidOperation, want: true},
		{name: "plain error", err: errors.New("boom"), target: ErrNotFound, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_MessageIncludesFields(t *testing.T) {
	err := NewErrValidation(
		FieldError{Field: "content", Message: "must be at most 280 characters"},
		FieldError{Field: "image", Message: "is invalid"},
	)

	assert.Equal(t, "validation failed: content: must be at most 280 characters; image: is invalid", err.Error())
	assert.Len(t, err.Fields, 2)
}
