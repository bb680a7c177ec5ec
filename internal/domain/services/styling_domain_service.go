package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/repositories"
	"fashion-assistant/internal/domain/valueobjects"
)

// VariationHook is called once per finished gallery slot. It may be called
// from several goroutines when generation runs concurrently.
type VariationHook func(index int, variation entities.Variation)

type Option func(*StylingDomainService)

// WithMaxConcurrency bounds how many variations are generated at once.
func WithMaxConcurrency(n int) Option {
	return func(s *StylingDomainService) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

func WithVariationHook(hook VariationHook) Option {
	return func(s *StylingDomainService) {
		s.onVariation = hook
	}
}

type StylingDomainService struct {
	captionService      repositories.CaptionService
	adviceService       repositories.AdviceService
	textToImageService  repositories.TextToImageService
	imageToImageService repositories.ImageToImageService
	translations        *TranslationRegistry
	uploads             repositories.UploadStore
	maxConcurrency      int
	onVariation         VariationHook
}

func NewStylingDomainService(
	captionService repositories.CaptionService,
	adviceService repositories.AdviceService,
	textToImageService repositories.TextToImageService,
	imageToImageService repositories.ImageToImageService,
	translations *TranslationRegistry,
	uploads repositories.UploadStore,
	opts ...Option,
) *StylingDomainService {
	s := &StylingDomainService{
		captionService:      captionService,
		adviceService:       adviceService,
		textToImageService:  textToImageService,
		imageToImageService: imageToImageService,
		translations:        translations,
		uploads:             uploads,
		maxConcurrency:      1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessStyling runs one request through the pipeline. A validation error
// returns no result. A failed input translation returns the partial result
// together with an error wrapping ErrTranslation. Every later failure is
// written into its own field of the result and err is nil.
func (s *StylingDomainService) ProcessStyling(ctx context.Context, request *entities.StylingRequest) (*entities.StylingResult, error) {
	if strings.TrimSpace(request.Text()) == "" {
		return nil, fmt.Errorf("request validation failed: %w", ErrEmptyText)
	}

	params := request.Parameters()
	result := entities.NewStylingResult(request.ID())
	pair, translate := s.translations.Lookup(params.Language())

	englishText := request.Text()
	if translate {
		translated, err := pair.ToPivot.Translate(ctx, entities.NewTextRequest(request.Text(), ""))
		if err != nil {
			slog.Warn("ProcessStyling", "step", "translate input", "language", params.Language(), "error", err)
			result.SetCaption(fmt.Sprintf("%s: %v", translateInputErrorPrefix, err))
			return result, fmt.Errorf("%w: %w", ErrTranslation, err)
		}
		englishText = translated.Text()
	}

	image, err := s.validateRequest(englishText, request)
	if err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	var uploadPath string
	caption := ""
	if image != nil {
		uploadPath, err = s.uploads.Save(ctx, request.ID(), image.Data(), image.Extension())
		if err != nil {
			result.SetCaption(fmt.Sprintf("%s: %v", captionErrorPrefix, err))
		} else {
			defer func() {
				if err := s.uploads.Remove(uploadPath); err != nil {
					slog.Warn("ProcessStyling", "step", "remove upload", "path", uploadPath, "error", err)
				}
			}()

			caption, err = s.generateCaption(ctx, uploadPath)
			if err != nil {
				result.SetCaption(fmt.Sprintf("%s: %v", captionErrorPrefix, err))
				caption = ""
			} else {
				result.SetCaption(caption)
			}
		}
	}

	combined := CombineInput(englishText, caption)

	imagePrompt := combined
	advice, localized, err := s.generateAdvice(ctx, combined, params, pair, translate)
	if err != nil {
		result.SetAdvice(fmt.Sprintf("%s: %v", adviceErrorPrefix, err))
	} else {
		result.SetAdvice(localized)
		imagePrompt = advice
	}

	mode := entities.TextGuided
	if image != nil && params.UseVariations() {
		mode = entities.ImageGuided
	}
	result.SetMode(mode)
	result.SetVariations(s.generateVariations(ctx, mode, imagePrompt, uploadPath, image, params.VariationCount()))

	return result, nil
}

func (s *StylingDomainService) validateRequest(text string, request *entities.StylingRequest) (*valueobjects.ImageData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	if !request.HasImage() {
		return nil, nil
	}

	image, err := valueobjects.NewImageData(request.ImageBytes(), request.ImageMimeType())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	// ヘッダーだけ正しい破損ファイルもここで弾く
	if _, err := image.Decode(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	return image, nil
}

func (s *StylingDomainService) generateCaption(ctx context.Context, path string) (string, error) {
	caption, err := s.captionService.CaptionImage(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCaption, s.quotaAware(err))
	}
	if caption.IsEmpty() {
		return "", fmt.Errorf("%w: empty caption", ErrCaption)
	}
	return caption.Text(), nil
}

// generateAdvice returns the truncated pivot-language advice and the same
// advice in the request language.
func (s *StylingDomainService) generateAdvice(
	ctx context.Context,
	combined string,
	params *valueobjects.StylingParameters,
	pair TranslatorPair,
	translate bool,
) (string, string, error) {
	prompt := BuildStylingPrompt(combined, params)
	slog.Debug("ProcessStyling", "step", "advice", "prompt", prompt)

	generated, err := s.adviceService.GenerateAdvice(ctx, entities.NewTextRequest(prompt, ""))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrAdvice, s.quotaAware(err))
	}

	advice := TruncateAdvice(generated.Text())
	if !translate {
		return advice, advice, nil
	}

	localized, err := pair.FromPivot.Translate(ctx, entities.NewTextRequest(advice, ""))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrAdvice, err)
	}
	return advice, localized.Text(), nil
}

func (s *StylingDomainService) generateVariations(
	ctx context.Context,
	mode entities.GenerationMode,
	prompt string,
	uploadPath string,
	image *valueobjects.ImageData,
	count int,
) []entities.Variation {
	variations := make([]entities.Variation, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i := range count {
		g.Go(func() error {
			variations[i] = s.generateVariation(gctx, mode, prompt, uploadPath, image, i)
			if s.onVariation != nil {
				s.onVariation(i, variations[i])
			}
			return nil
		})
	}
	// 各スロットのエラーは結果に格納済み
	_ = g.Wait()

	return variations
}

func (s *StylingDomainService) generateVariation(
	ctx context.Context,
	mode entities.GenerationMode,
	prompt string,
	uploadPath string,
	image *valueobjects.ImageData,
	index int,
) entities.Variation {
	var (
		generated *valueobjects.ImageData
		err       error
	)

	if mode == entities.ImageGuided {
		generated, err = s.imageToImageService.GenerateVariation(ctx,
			entities.NewImageToImageRequest(prompt, uploadPath, image, index))
	} else {
		generated, err = s.textToImageService.GenerateImage(ctx,
			entities.NewTextToImageRequest(prompt, index))
	}

	if err == nil && generated == nil {
		err = fmt.Errorf("no image generated")
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrImageGeneration, s.quotaAware(err))
		slog.Warn("ProcessStyling", "step", "variation", "index", index, "mode", mode, "error", err)
		return entities.Variation{Error: fmt.Sprintf("%s: %v", imageErrorPrefix, err)}
	}

	return entities.Variation{Image: generated}
}

func (s *StylingDomainService) quotaAware(err error) error {
	if IsQuotaError(err) {
		return fmt.Errorf("%s: %w", quotaErrorMessage, err)
	}
	return err
}
