package service

import (
	"strings"

	"github.com/dtroode/chirper-server/internal/model"
	"github.com/dtroode/chirper-server/internal/validation"
)

// canonical lowercases and trims handles and addresses before they reach the store.
func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Text limits are counted in characters. The max of content matches model.MaxContentLength.
type contentInput struct {
	Content string `json:"content" validate:"required,max=280"`
}

type mediaContentInput struct {
	Content string `json:"content" validate:"max=280"`
}

type profileInput struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=50"`
	Bio      *string `json:"bio" validate:"omitnil,max=160"`
	Location *string `json:"location" validate:"omitnil,max=30"`
	Website  *string `json:"website" validate:"omitnil,max=100"`
}

// validateContent checks tweet and comment text. It may only be empty when
// media is attached.
func validateContent(content string, hasMedia bool) error {
	if hasMedia {
		return validation.Struct(mediaContentInput{Content: content})
	}
	return validation.Struct(contentInput{Content: content})
}

func validateProfilePatch(patch model.ProfilePatch) error {
	return validation.Struct(profileInput{
		Name:     patch.Name,
		Bio:      patch.Bio,
		Location: patch.Location,
		Website:  patch.Website,
	})
}
