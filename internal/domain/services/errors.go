package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation aborts the request: empty text or an undecodable image.
	ErrValidation = errors.New("invalid request")

	// ErrTranslation is returned only when translating the user's input fails.
	ErrTranslation = errors.New("translation failed")

	ErrCaption         = errors.New("caption generation failed")
	ErrAdvice          = errors.New("styling advice generation failed")
	ErrImageGeneration = errors.New("outfit image generation failed")
)

var (
	ErrEmptyText    = fmt.Errorf("%w: text input cannot be empty, please describe your style or occasion", ErrValidation)
	ErrInvalidImage = fmt.Errorf("%w: uploaded file is not a valid image", ErrValidation)
)

// Inline messages rendered in place of the failed output.
const (
	translateInputErrorPrefix = "Error translating input text"
	captionErrorPrefix        = "Error generating caption"
	adviceErrorPrefix         = "Error generating styling advice"
	imageErrorPrefix          = "Error generating outfit image"
)

const quotaErrorMessage = "service temporarily unavailable due to high demand"

func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, quotaErrorMessage)
}
