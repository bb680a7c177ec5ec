package external

import (
	"context"
	"fmt"
	"log/slog"

	genai_std "google.golang.org/genai"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/valueobjects"
)

const DefaultImagenModel = "imagen-3.0-generate-002"

// ImagenAIService renders outfits from text with Imagen through the GenAI SDK.
type ImagenAIService struct {
	genAIClient *genai_std.Client
	model       string
}

func NewImagenAIService(genAIClient *genai_std.Client, model string) *ImagenAIService {
	if model == "" {
		model = DefaultImagenModel
	}
	return &ImagenAIService{
		genAIClient: genAIClient,
		model:       model,
	}
}

func (s *ImagenAIService) GenerateImage(ctx context.Context, request *entities.TextToImageRequest) (*valueobjects.ImageData, error) {
	slog.Info("GenerateImage", "model", s.model, "index", request.Index())

	config := &genai_std.GenerateImagesConfig{
		NumberOfImages:   1,
		AspectRatio:      "1:1",
		IncludeRAIReason: true,
		OutputMIMEType:   "image/png",
	}

	imagenResponse, err := s.genAIClient.Models.GenerateImages(
		ctx,
		s.model,
		outfitImagePrompt(request.Prompt()),
		config,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate images: %w", err)
	}

	for _, generated := range imagenResponse.GeneratedImages {
		if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			if generated.RAIFilteredReason != "" {
				return nil, fmt.Errorf("image filtered: %s", generated.RAIFilteredReason)
			}
			continue
		}

		image, err := valueobjects.NewImageData(generated.Image.ImageBytes, generated.Image.MIMEType)
		if err != nil {
			return nil, fmt.Errorf("failed to create image data: %w", err)
		}
		return image, nil
	}

	return nil, fmt.Errorf("no image data received from Imagen")
}

func (s *ImagenAIService) Close() error {
	// GenAI Clientはリソースクリーンアップ不要
	s.genAIClient = nil
	return nil
}

// outfitImagePrompt frames styling advice as an image description.
func outfitImagePrompt(advice string) string {
	return "A full-body fashion photograph of an outfit styled as follows: " + advice
}
