package external

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	genai_std "google.golang.org/genai"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/repositories"
	"fashion-assistant/internal/domain/services"
	"fashion-assistant/internal/domain/valueobjects"
)

var languageNames = map[valueobjects.Language]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
}

func languageName(lang valueobjects.Language) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return string(lang)
}

// GeminiTranslationService translates in one fixed direction.
type GeminiTranslationService struct {
	genAIClient *genai_std.Client
	model       string
	source      valueobjects.Language
	target      valueobjects.Language
}

func NewGeminiTranslationService(genAIClient *genai_std.Client, model string, source, target valueobjects.Language) *GeminiTranslationService {
	if model == "" {
		model = DefaultTextModel
	}
	return &GeminiTranslationService{
		genAIClient: genAIClient,
		model:       model,
		source:      source,
		target:      target,
	}
}

// NewGeminiTranslatorFactory builds one translator per direction on a shared client.
func NewGeminiTranslatorFactory(genAIClient *genai_std.Client, model string) services.TranslatorFactory {
	return func(source, target valueobjects.Language) (repositories.TranslationService, error) {
		if genAIClient == nil {
			return nil, fmt.Errorf("GenAI client is required for %s-%s translation", source, target)
		}
		return NewGeminiTranslationService(genAIClient, model, source, target), nil
	}
}

func (s *GeminiTranslationService) Translate(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	prompt := buildTranslationPrompt(request.Prompt(), s.source, s.target)

	resp, err := s.genAIClient.Models.GenerateContent(ctx,
		s.model,
		genai_std.Text(prompt),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	result := entities.NewTextResult(resp.Text())
	if result.IsEmpty() {
		return nil, fmt.Errorf("empty %s translation", languageName(s.target))
	}

	slog.Info("Translate", "source", s.source, "target", s.target, "length", len(result.Text()))
	return result, nil
}

func buildTranslationPrompt(text string, source, target valueobjects.Language) string {
	var sb strings.Builder

	sb.WriteString("Translate the following text from " + languageName(source) + " into " + languageName(target) + ". ")
	sb.WriteString("The translation should be accurate and natural in tone. ")
	sb.WriteString("Keep bullet points and line breaks. Output only the translation.\n")
	sb.WriteString("Target Text: '" + text + "'\n")
	sb.WriteString(languageName(target) + " Translation:")

	return sb.String()
}
