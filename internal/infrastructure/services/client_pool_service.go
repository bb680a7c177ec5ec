package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"cloud.google.com/go/vertexai/genai" // VertexAI用
	"google.golang.org/api/option"
	genai_std "google.golang.org/genai" // 標準GenAI用

	"fashion-assistant/internal/domain/repositories"
)

// VertexAI Client Pool実装
type vertexAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai.Client
	mutex  sync.RWMutex
}

func newVertexAIClientPool(config *repositories.AIClientConfig) repositories.VertexAIClientPool {
	return &vertexAIClientPool{
		config: config,
	}
}

func (p *vertexAIClientPool) GetVertexAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// ダブルチェックロッキング
	if p.client != nil {
		return p.client, nil
	}

	if p.config.ProjectID == "" {
		return nil, fmt.Errorf("project ID is required for VertexAI client")
	}

	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", p.config.Location)
	client, err := genai.NewClient(ctx, p.config.ProjectID, p.config.Location, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create VertexAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *vertexAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// GenAI Client Pool実装
type genAIClientPool struct {
	config     *repositories.AIClientConfig
	httpClient *http.Client
	client     *genai_std.Client
	mutex      sync.RWMutex
}

func newGenAIClientPool(config *repositories.AIClientConfig, httpClient *http.Client) repositories.GenAIClientPool {
	return &genAIClientPool{
		config:     config,
		httpClient: httpClient,
	}
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai_std.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// ダブルチェックロッキング
	if p.client != nil {
		return p.client, nil
	}

	client, err := genai_std.NewClient(ctx, p.clientConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

// APIキーがあればGemini API、なければVertex AI（ADC）を使う
func (p *genAIClientPool) clientConfig() *genai_std.ClientConfig {
	cc := &genai_std.ClientConfig{
		HTTPClient: p.httpClient,
	}

	if p.config.GeminiAPIKey != "" {
		cc.APIKey = p.config.GeminiAPIKey
		cc.Backend = genai_std.BackendGeminiAPI
		return cc
	}

	cc.Backend = genai_std.BackendVertexAI
	cc.Project = p.config.ProjectID
	cc.Location = p.config.Location
	return cc
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// GenAI Clientはリソースクリーンアップ不要
	p.client = nil
	return nil
}

// Client Pool Service実装
type clientPoolService struct {
	config       *repositories.AIClientConfig
	vertexAIPool repositories.VertexAIClientPool
	genAIPool    repositories.GenAIClientPool
}

// httpClientがnilの場合はGenAI SDKのデフォルトクライアントを使う
func NewClientPoolService(config repositories.AIClientConfig, httpClient *http.Client) repositories.ClientPoolService {
	cfg := &config

	return &clientPoolService{
		config:       cfg,
		vertexAIPool: newVertexAIClientPool(cfg),
		genAIPool:    newGenAIClientPool(cfg, httpClient),
	}
}

func (s *clientPoolService) VertexAIPool() repositories.VertexAIClientPool {
	return s.vertexAIPool
}

func (s *clientPoolService) GenAIPool() repositories.GenAIClientPool {
	return s.genAIPool
}

func (s *clientPoolService) Config() *repositories.AIClientConfig {
	return s.config
}

func (s *clientPoolService) Close() error {
	var errs []error

	if err := s.vertexAIPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("VertexAI pool close error: %w", err))
	}

	if err := s.genAIPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("GenAI pool close error: %w", err))
	}

	return errors.Join(errs...)
}
