package usecases

import (
	"context"
	"errors"
	"fmt"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/repositories"
	"fashion-assistant/internal/domain/services"
	"fashion-assistant/internal/domain/valueobjects"
)

// ErrResultNotFound is returned when a stored result has been evicted or never existed.
var ErrResultNotFound = errors.New("result not found")

type StylingUseCase struct {
	resultRepo    repositories.StylingResultRepository
	domainService *services.StylingDomainService
}

func NewStylingUseCase(
	resultRepo repositories.StylingResultRepository,
	domainService *services.StylingDomainService,
) *StylingUseCase {
	return &StylingUseCase{
		resultRepo:    resultRepo,
		domainService: domainService,
	}
}

type StylingInput struct {
	Text          string
	ImageData     []byte
	ImageMimeType string
	Parameters    *StylingParametersInput
}

type StylingParametersInput struct {
	Style          string
	Season         string
	Occasion       string
	Language       string
	UseVariations  bool
	VariationCount int
}

type StylingOutput struct {
	RequestID entities.StylingRequestID
	ResultID  entities.StylingResultID
	Caption   string
	Advice    string
	Mode      entities.GenerationMode
	Images    []ImageOutput
}

// ImageOutput is one gallery slot. Error is set instead of Data when the
// slot failed.
type ImageOutput struct {
	Index int
	Data  []byte
	Type  string
	Error string
}

// Execute processes a styling request and stores its result. When the
// input translation fails it returns both the partial output and an error
// wrapping services.ErrTranslation.
func (uc *StylingUseCase) Execute(ctx context.Context, input StylingInput) (*StylingOutput, error) {
	parameters, err := uc.convertParameters(input.Parameters)
	if err != nil {
		return nil, fmt.Errorf("invalid parameters: %w: %w", services.ErrValidation, err)
	}

	request := entities.NewStylingRequest(input.Text, input.ImageData, input.ImageMimeType, parameters)

	result, processErr := uc.domainService.ProcessStyling(ctx, request)
	if result == nil {
		return nil, processErr
	}

	if err := uc.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	return toOutput(result), processErr
}

func (uc *StylingUseCase) GetResult(ctx context.Context, id entities.StylingResultID) (*StylingOutput, error) {
	result, err := uc.resultRepo.FindResultByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResultNotFound, err)
	}
	return toOutput(result), nil
}

// GetImage returns a single generated image of a stored result.
func (uc *StylingUseCase) GetImage(ctx context.Context, id entities.StylingResultID, index int) (*ImageOutput, error) {
	output, err := uc.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(output.Images) {
		return nil, fmt.Errorf("%w: image index %d out of range", ErrResultNotFound, index)
	}

	image := output.Images[index]
	if image.Error != "" {
		return nil, fmt.Errorf("%w: image %d was not generated: %s", ErrResultNotFound, index, image.Error)
	}
	return &image, nil
}

func toOutput(result *entities.StylingResult) *StylingOutput {
	output := &StylingOutput{
		RequestID: result.RequestID(),
		ResultID:  result.ID(),
		Caption:   result.Caption(),
		Advice:    result.Advice(),
		Mode:      result.Mode(),
	}

	for i, v := range result.Variations() {
		if !v.OK() {
			output.Images = append(output.Images, ImageOutput{Index: i, Error: v.Error})
			continue
		}
		output.Images = append(output.Images, ImageOutput{
			Index: i,
			Data:  v.Image.Data(),
			Type:  v.Image.MimeType(),
		})
	}

	return output
}

func (uc *StylingUseCase) convertParameters(input *StylingParametersInput) (*valueobjects.StylingParameters, error) {
	if input == nil {
		return valueobjects.DefaultStylingParameters(), nil
	}

	return valueobjects.NewStylingParameters(
		valueobjects.OutfitStyle(input.Style),
		valueobjects.Season(input.Season),
		valueobjects.Occasion(input.Occasion),
		valueobjects.Language(input.Language),
		input.UseVariations,
		input.VariationCount,
	)
}
