package external

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/valueobjects"
)

const DefaultImageEditModel = "gemini-2.5-flash-image-preview"

// NanobananaAIService derives outfit variations from the uploaded image with
// the Gemini image model.
type NanobananaAIService struct {
	genAIClient *genai.Client
	model       string
}

func NewNanobananaAIService(genAIClient *genai.Client, model string) *NanobananaAIService {
	if model == "" {
		model = DefaultImageEditModel
	}
	return &NanobananaAIService{
		genAIClient: genAIClient,
		model:       model,
	}
}

func (s *NanobananaAIService) GenerateVariation(ctx context.Context, request *entities.ImageToImageRequest) (*valueobjects.ImageData, error) {
	source := request.Source()
	if source == nil {
		loaded, err := valueobjects.LoadImageData(request.SourcePath())
		if err != nil {
			return nil, fmt.Errorf("image data is required: %w", err)
		}
		source = loaded
	}

	slog.Info("GenerateVariation", "model", s.model, "index", request.Index(), "strength", request.Strength())

	parts := []*genai.Part{
		genai.NewPartFromText(variationPrompt(request.Prompt(), request.Strength())),
		{
			InlineData: &genai.Blob{
				MIMEType: source.MimeType(),
				Data:     source.Data(),
			},
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	// 画像モデルは複数候補を返せないため、1リクエスト1画像で呼び出す
	resp, err := s.genAIClient.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates received from Gemini API")
	}

	var responseText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			responseText = part.Text
			continue
		}
		if part.InlineData == nil {
			continue
		}

		imageData, err := valueobjects.NewImageData(part.InlineData.Data, part.InlineData.MIMEType)
		if err != nil {
			return nil, fmt.Errorf("failed to create image data: %w", err)
		}
		return imageData, nil
	}

	slog.Warn("No image data in response", "responseText", responseText)
	return nil, fmt.Errorf("no image data received from Gemini API")
}

func (s *NanobananaAIService) Close() error {
	s.genAIClient = nil
	return nil
}

// variationPrompt maps the diffusion strength onto an instruction, since the
// image model takes no strength parameter.
func variationPrompt(advice string, strength float64) string {
	keep := "Keep the overall silhouette of the garment in this image"
	if strength >= 0.7 {
		keep = "Use the garment in this image as loose inspiration"
	}
	return fmt.Sprintf("%s and create a new full-body outfit photograph that follows this styling advice: %s", keep, advice)
}
