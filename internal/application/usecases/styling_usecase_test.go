package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"testing"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/repositories"
	"fashion-assistant/internal/domain/services"
	"fashion-assistant/internal/domain/valueobjects"
)

type stubCaption struct{}

func (stubCaption) CaptionImage(ctx context.Context, imagePath string) (*entities.TextResult, error) {
	return entities.NewTextResult("a red dress"), nil
}

type stubAdvice struct{}

func (stubAdvice) GenerateAdvice(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	return entities.NewTextResult("- Add gold earrings"), nil
}

type stubTranslator struct{ err error }

func (s stubTranslator) Translate(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return entities.NewTextResult(request.Prompt()), nil
}

type stubImages struct {
	image  *valueobjects.ImageData
	failOn int
}

func (s stubImages) GenerateImage(ctx context.Context, request *entities.TextToImageRequest) (*valueobjects.ImageData, error) {
	if request.Index() == s.failOn {
		return nil, errors.New("boom")
	}
	return s.image, nil
}

func (s stubImages) GenerateVariation(ctx context.Context, request *entities.ImageToImageRequest) (*valueobjects.ImageData, error) {
	return s.image, nil
}

func (stubImages) Close() error { return nil }

type stubUploads struct{}

func (stubUploads) Save(ctx context.Context, requestID entities.StylingRequestID, image []byte, ext string) (string, error) {
	return "/tmp/" + string(requestID) + ext, nil
}

func (stubUploads) Remove(path string) error { return nil }

type mockResultRepository struct {
	results map[entities.StylingResultID]*entities.StylingResult
	saveErr error
}

func newMockResultRepository() *mockResultRepository {
	return &mockResultRepository{results: make(map[entities.StylingResultID]*entities.StylingResult)}
}

func (m *mockResultRepository) SaveResult(ctx context.Context, result *entities.StylingResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.results[result.ID()] = result
	return nil
}

func (m *mockResultRepository) FindResultByID(ctx context.Context, id entities.StylingResultID) (*entities.StylingResult, error) {
	if r, ok := m.results[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("result not found: %s", id)
}

func (m *mockResultRepository) FindResultByRequestID(ctx context.Context, requestID entities.StylingRequestID) (*entities.StylingResult, error) {
	for _, r := range m.results {
		if r.RequestID() == requestID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("result not found for request: %s", requestID)
}

func testPNG(t *testing.T) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func newTestUseCase(t *testing.T, repo repositories.StylingResultRepository, translateErr error, failOn int) *StylingUseCase {
	img, err := valueobjects.NewImageData(testPNG(t), "")
	if err != nil {
		t.Fatalf("NewImageData() error = %v", err)
	}

	registry, err := services.NewTranslationRegistry([]valueobjects.Language{"es"},
		func(source, target valueobjects.Language) (repositories.TranslationService, error) {
			return stubTranslator{err: translateErr}, nil
		})
	if err != nil {
		t.Fatalf("NewTranslationRegistry() error = %v", err)
	}

	images := stubImages{image: img, failOn: failOn}
	domain := services.NewStylingDomainService(stubCaption{}, stubAdvice{}, images, images, registry, stubUploads{})
	return NewStylingUseCase(repo, domain)
}

func TestStylingUseCase_Execute(t *testing.T) {
	t.Run("stores the result and maps slots", func(t *testing.T) {
		repo := newMockResultRepository()
		uc := newTestUseCase(t, repo, nil, 1)

		output, err := uc.Execute(context.Background(), StylingInput{
			Text: "Formal evening wear",
			Parameters: &StylingParametersInput{
				Style: "Formal", Season: "Winter", Occasion: "None", Language: "en", VariationCount: 2,
			},
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if output.Advice != "- Add gold earrings" {
			t.Errorf("Advice = %q", output.Advice)
		}
		if len(output.Images) != 2 {
			t.Fatalf("Expected 2 image slots, got %d", len(output.Images))
		}
		if output.Images[0].Error != "" || output.Images[0].Type != "image/png" || len(output.Images[0].Data) == 0 {
			t.Errorf("Slot 0 should hold a PNG, got %+v", output.Images[0])
		}
		if output.Images[1].Error == "" || output.Images[1].Data != nil || output.Images[1].Index != 1 {
			t.Errorf("Slot 1 should hold an error, got %+v", output.Images[1])
		}
		if _, ok := repo.results[output.ResultID]; !ok {
			t.Errorf("Result should be stored")
		}
	})

	t.Run("nil parameters use defaults", func(t *testing.T) {
		uc := newTestUseCase(t, newMockResultRepository(), nil, -1)

		output, err := uc.Execute(context.Background(), StylingInput{Text: "weekend"})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(output.Images) != valueobjects.DefaultVariations {
			t.Errorf("Expected %d slots, got %d", valueobjects.DefaultVariations, len(output.Images))
		}
	})

	t.Run("invalid count is a validation error", func(t *testing.T) {
		uc := newTestUseCase(t, newMockResultRepository(), nil, -1)

		_, err := uc.Execute(context.Background(), StylingInput{
			Text:       "weekend",
			Parameters: &StylingParametersInput{VariationCount: 9},
		})
		if !errors.Is(err, services.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("validation failure returns no output", func(t *testing.T) {
		repo := newMockResultRepository()
		uc := newTestUseCase(t, repo, nil, -1)

		output, err := uc.Execute(context.Background(), StylingInput{Text: "  "})
		if !errors.Is(err, services.ErrValidation) || output != nil {
			t.Errorf("Expected validation failure, got output=%v err=%v", output, err)
		}
		if len(repo.results) != 0 {
			t.Errorf("Nothing should be stored")
		}
	})

	t.Run("translation failure returns partial output", func(t *testing.T) {
		uc := newTestUseCase(t, newMockResultRepository(), errors.New("offline"), -1)

		output, err := uc.Execute(context.Background(), StylingInput{
			Text:       "ropa",
			Parameters: &StylingParametersInput{Language: "es", VariationCount: 1},
		})
		if !errors.Is(err, services.ErrTranslation) {
			t.Fatalf("Expected ErrTranslation, got %v", err)
		}
		if output == nil || output.Caption == "" || len(output.Images) != 0 {
			t.Errorf("Expected partial output with caption error, got %+v", output)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newMockResultRepository()
		repo.saveErr = errors.New("full")
		uc := newTestUseCase(t, repo, nil, -1)

		if _, err := uc.Execute(context.Background(), StylingInput{Text: "weekend"}); err == nil {
			t.Errorf("Expected error when the result cannot be stored")
		}
	})
}

func TestStylingUseCase_GetImage(t *testing.T) {
	uc := newTestUseCase(t, newMockResultRepository(), nil, 1)

	output, err := uc.Execute(context.Background(), StylingInput{
		Text:       "beach",
		Parameters: &StylingParametersInput{VariationCount: 2},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	tests := []struct {
		name    string
		id      entities.StylingResultID
		index   int
		wantErr bool
	}{
		{name: "generated image", id: output.ResultID, index: 0, wantErr: false},
		{name: "failed slot", id: output.ResultID, index: 1, wantErr: true},
		{name: "out of range", id: output.ResultID, index: 2, wantErr: true},
		{name: "unknown result", id: "result_missing", index: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := uc.GetImage(context.Background(), tt.id, tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetImage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrResultNotFound) {
				t.Errorf("Expected ErrResultNotFound, got %v", err)
			}
			if err == nil && img.Type != "image/png" {
				t.Errorf("Type = %q, want image/png", img.Type)
			}
		})
	}
}
