package repositories

import (
	"context"

	"cloud.google.com/go/vertexai/genai" // VertexAI用
	genai_std "google.golang.org/genai"  // 標準GenAI用
)

// AIクライアント共通設定
type AIClientConfig struct {
	ProjectID string
	Location  string

	// 空の場合はVertex AIバックエンド（ADC認証）でGenAIクライアントを作成する
	GeminiAPIKey string
}

// VertexAI Client Pool Service
// キャプション生成（vertexバックエンド）で使用するクライアントプール
type VertexAIClientPool interface {
	GetVertexAIClient(ctx context.Context) (*genai.Client, error)

	Close() error
}

// GenAI Client Pool Service
// Gemini/Imagen呼び出しで共有する標準GenAIクライアントプール
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai_std.Client, error)

	Close() error
}

// Client Pool Service
// 全AIクライアントプールを統合管理するサービス
type ClientPoolService interface {
	VertexAIPool() VertexAIClientPool

	GenAIPool() GenAIClientPool

	Config() *AIClientConfig

	// 全リソースのクリーンアップ
	Close() error
}
