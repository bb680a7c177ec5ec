package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fashion-assistant/internal/domain/valueobjects"
)

type StylingResultID string

type GenerationMode string

const (
	TextGuided  GenerationMode = "text-to-image"
	ImageGuided GenerationMode = "image-to-image"
)

// Variation is one slot of the generated gallery: an image, or the error
// text shown in its place.
type Variation struct {
	Image *valueobjects.ImageData
	Error string
}

func (v Variation) OK() bool {
	return v.Image != nil && v.Error == ""
}

type StylingResult struct {
	id         StylingResultID
	requestID  StylingRequestID
	caption    string
	advice     string
	mode       GenerationMode
	variations []Variation
	createdAt  time.Time
}

func NewStylingResult(requestID StylingRequestID) *StylingResult {
	id := StylingResultID(fmt.Sprintf("result_%s", uuid.NewString()))

	return &StylingResult{
		id:        id,
		requestID: requestID,
		createdAt: time.Now(),
	}
}

func (r *StylingResult) ID() StylingResultID {
	return r.id
}

func (r *StylingResult) RequestID() StylingRequestID {
	return r.requestID
}

func (r *StylingResult) Caption() string {
	return r.caption
}

func (r *StylingResult) SetCaption(caption string) {
	r.caption = caption
}

func (r *StylingResult) Advice() string {
	return r.advice
}

func (r *StylingResult) SetAdvice(advice string) {
	r.advice = advice
}

func (r *StylingResult) Mode() GenerationMode {
	return r.mode
}

func (r *StylingResult) SetMode(mode GenerationMode) {
	r.mode = mode
}

func (r *StylingResult) Variations() []Variation {
	return r.variations
}

func (r *StylingResult) SetVariations(variations []Variation) {
	r.variations = variations
}

func (r *StylingResult) CreatedAt() time.Time {
	return r.createdAt
}

func (r *StylingResult) HasImages() bool {
	for _, v := range r.variations {
		if v.OK() {
			return true
		}
	}
	return false
}
