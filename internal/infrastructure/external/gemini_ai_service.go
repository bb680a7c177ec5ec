package external

import (
	"context"
	"fmt"
	"log/slog"

	genai_std "google.golang.org/genai"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/valueobjects"
)

const DefaultTextModel = "gemini-2.5-flash"

const captionPrompt = "Describe the clothing in this image in one short sentence. " +
	"Mention the garment type, color and material. Output only the sentence."

// GeminiAIService captions uploads and writes styling advice with a Gemini text model.
type GeminiAIService struct {
	genAIClient *genai_std.Client
	textModel   string
}

func NewGeminiAIService(genAIClient *genai_std.Client, textModel string) *GeminiAIService {
	if textModel == "" {
		textModel = DefaultTextModel
	}
	return &GeminiAIService{
		genAIClient: genAIClient,
		textModel:   textModel,
	}
}

func (s *GeminiAIService) CaptionImage(ctx context.Context, imagePath string) (*entities.TextResult, error) {
	image, err := valueobjects.LoadImageData(imagePath)
	if err != nil {
		return nil, err
	}

	slog.Info("CaptionImage", "model", s.textModel, "mimeType", image.MimeType(), "bytes", len(image.Data()))

	parts := []*genai_std.Part{
		genai_std.NewPartFromText(captionPrompt),
		genai_std.NewPartFromBytes(image.Data(), image.MimeType()),
	}
	contents := []*genai_std.Content{
		genai_std.NewContentFromParts(parts, genai_std.RoleUser),
	}

	resp, err := s.genAIClient.Models.GenerateContent(ctx, s.textModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return entities.NewTextResult(resp.Text()), nil
}

func (s *GeminiAIService) GenerateAdvice(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	model := request.Model()
	if model == "" {
		model = s.textModel
	}

	resp, err := s.genAIClient.Models.GenerateContent(ctx,
		model,
		genai_std.Text(request.Prompt()),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	respText := resp.Text()
	slog.Info("GenerateAdvice", "model", model, "length", len(respText))

	return entities.NewTextResult(respText), nil
}
