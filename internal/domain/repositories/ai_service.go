package repositories

import (
	"context"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/valueobjects"
)

// 画像キャプション生成サービス
type CaptionService interface {
	CaptionImage(ctx context.Context, imagePath string) (*entities.TextResult, error)
}

// スタイリング提案（テキスト生成）サービス
type AdviceService interface {
	GenerateAdvice(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error)
}

// 翻訳サービス（言語ペアごとに1方向）
type TranslationService interface {
	Translate(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error)
}

// テキストから画像を生成するサービス
type TextToImageService interface {
	GenerateImage(ctx context.Context, request *entities.TextToImageRequest) (*valueobjects.ImageData, error)

	Close() error
}

// アップロード画像をもとに画像を生成するサービス
type ImageToImageService interface {
	GenerateVariation(ctx context.Context, request *entities.ImageToImageRequest) (*valueobjects.ImageData, error)

	Close() error
}
