package entities

import "fashion-assistant/internal/domain/valueobjects"

// DefaultVariationStrength is how far image-guided generation may drift
// from the uploaded image (0 keeps it, 1 ignores it).
const DefaultVariationStrength = 0.8

type TextToImageRequest struct {
	prompt string
	index  int
}

func NewTextToImageRequest(prompt string, index int) *TextToImageRequest {
	return &TextToImageRequest{
		prompt: prompt,
		index:  index,
	}
}

func (r *TextToImageRequest) Prompt() string {
	return r.prompt
}

// Index is the gallery slot this image is generated for.
func (r *TextToImageRequest) Index() int {
	return r.index
}

type ImageToImageRequest struct {
	prompt     string
	sourcePath string
	source     *valueobjects.ImageData
	strength   float64
	index      int
}

func NewImageToImageRequest(prompt, sourcePath string, source *valueobjects.ImageData, index int) *ImageToImageRequest {
	return &ImageToImageRequest{
		prompt:     prompt,
		sourcePath: sourcePath,
		source:     source,
		strength:   DefaultVariationStrength,
		index:      index,
	}
}

func (r *ImageToImageRequest) Prompt() string {
	return r.prompt
}

// SourcePath is where the uploaded image was stored for this request.
func (r *ImageToImageRequest) SourcePath() string {
	return r.sourcePath
}

func (r *ImageToImageRequest) Source() *valueobjects.ImageData {
	return r.source
}

func (r *ImageToImageRequest) Strength() float64 {
	return r.strength
}

func (r *ImageToImageRequest) Index() int {
	return r.index
}
