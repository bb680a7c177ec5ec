// Package bootstrap wires the configured backends into a styling pipeline.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fashion-assistant/internal/application/services"
	"fashion-assistant/internal/application/usecases"
	"fashion-assistant/internal/config"
	"fashion-assistant/internal/domain/repositories"
	domainservices "fashion-assistant/internal/domain/services"
	"fashion-assistant/internal/infrastructure/external"
	infrarepos "fashion-assistant/internal/infrastructure/repositories"
	infraservices "fashion-assistant/internal/infrastructure/services"
)

type Pipeline struct {
	UseCase    *usecases.StylingUseCase
	Parameters *services.ParameterService

	closers []func() error
}

// Close releases the model clients. It is safe to call on a partly built pipeline.
func (p *Pipeline) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func New(ctx context.Context, cfg config.Config, httpClient *http.Client, opts ...domainservices.Option) (*Pipeline, error) {
	if cfg.ImageBackend == config.ImageBackendComfyUI && !external.WorkflowExists(cfg.ComfyTxt2ImgWorkflow) {
		return nil, fmt.Errorf("ComfyUI workflow not found: %s", cfg.ComfyTxt2ImgWorkflow)
	}

	p := &Pipeline{}

	pool := infraservices.NewClientPoolService(repositories.AIClientConfig{
		ProjectID:    cfg.ProjectID,
		Location:     cfg.Location,
		GeminiAPIKey: cfg.GeminiAPIKey,
	}, httpClient)
	p.closers = append(p.closers, pool.Close)

	genAIClient, err := pool.GenAIPool().GetGenAIClient(ctx)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	gemini := external.NewGeminiAIService(genAIClient, cfg.TextModel)

	var vertex *external.VertexAIService
	if cfg.CaptionBackend == config.CaptionBackendVertex || cfg.ImageBackend == config.ImageBackendVertex {
		vertex = external.NewVertexAIService(cfg.ProjectID, cfg.Location, cfg.TextModel, cfg.VertexImagenModel, cfg.VertexEditModel, pool.VertexAIPool(), httpClient)
	}

	var caption repositories.CaptionService = gemini
	if cfg.CaptionBackend == config.CaptionBackendVertex {
		caption = vertex
	}

	var (
		textToImage  repositories.TextToImageService
		imageToImage repositories.ImageToImageService
	)
	switch cfg.ImageBackend {
	case config.ImageBackendVertex:
		textToImage, imageToImage = vertex, vertex
	case config.ImageBackendComfyUI:
		comfy := external.NewComfyAIService(cfg.ComfyAddress, cfg.ComfyPort, cfg.ComfyTxt2ImgWorkflow, cfg.ComfyImg2ImgWorkflow, httpClient)
		textToImage, imageToImage = comfy, comfy
	default:
		textToImage = external.NewImagenAIService(genAIClient, cfg.ImagenModel)
		imageToImage = external.NewNanobananaAIService(genAIClient, cfg.ImageEditModel)
	}
	p.closers = append(p.closers, textToImage.Close, imageToImage.Close)

	registry, err := domainservices.NewTranslationRegistry(cfg.Catalog.NonPivotLanguages(),
		external.NewGeminiTranslatorFactory(genAIClient, cfg.TextModel))
	if err != nil {
		p.Close()
		return nil, err
	}

	uploads, err := infrarepos.NewTempUploadStore(cfg.TempDir)
	if err != nil {
		p.Close()
		return nil, err
	}

	opts = append([]domainservices.Option{domainservices.WithMaxConcurrency(cfg.MaxConcurrentGenerations)}, opts...)
	domain := domainservices.NewStylingDomainService(caption, gemini, textToImage, imageToImage, registry, uploads, opts...)

	p.UseCase = usecases.NewStylingUseCase(infrarepos.NewMemoryStylingRepository(cfg.ResultCacheSize), domain)
	p.Parameters = services.NewParameterService(cfg.Catalog)

	slog.Info("Pipeline ready",
		"captionBackend", cfg.CaptionBackend,
		"imageBackend", cfg.ImageBackend,
		"textModel", cfg.TextModel,
		"languages", registry.Languages(),
		"maxConcurrency", cfg.MaxConcurrentGenerations,
	)

	return p, nil
}
