package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fashion-assistant/internal/domain/valueobjects"
)

type StylingRequestID string

// StylingRequest is one submission of the form. The uploaded image is kept
// as raw bytes; decoding it is part of request validation.
type StylingRequest struct {
	id            StylingRequestID
	text          string
	imageBytes    []byte
	imageMimeType string
	parameters    *valueobjects.StylingParameters
	createdAt     time.Time
}

func NewStylingRequest(
	text string,
	imageBytes []byte,
	imageMimeType string,
	parameters *valueobjects.StylingParameters,
) *StylingRequest {
	if parameters == nil {
		parameters = valueobjects.DefaultStylingParameters()
	}

	id := StylingRequestID(fmt.Sprintf("req_%s", uuid.NewString()))

	return &StylingRequest{
		id:            id,
		text:          text,
		imageBytes:    imageBytes,
		imageMimeType: imageMimeType,
		parameters:    parameters,
		createdAt:     time.Now(),
	}
}

func (r *StylingRequest) ID() StylingRequestID {
	return r.id
}

func (r *StylingRequest) Text() string {
	return r.text
}

func (r *StylingRequest) ImageBytes() []byte {
	return r.imageBytes
}

func (r *StylingRequest) ImageMimeType() string {
	return r.imageMimeType
}

func (r *StylingRequest) HasImage() bool {
	return len(r.imageBytes) > 0
}

func (r *StylingRequest) Parameters() *valueobjects.StylingParameters {
	return r.parameters
}

func (r *StylingRequest) CreatedAt() time.Time {
	return r.createdAt
}
