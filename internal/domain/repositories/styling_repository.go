package repositories

import (
	"context"

	"fashion-assistant/internal/domain/entities"
)

type StylingResultRepository interface {
	SaveResult(ctx context.Context, result *entities.StylingResult) error
	FindResultByID(ctx context.Context, id entities.StylingResultID) (*entities.StylingResult, error)
	FindResultByRequestID(ctx context.Context, requestID entities.StylingRequestID) (*entities.StylingResult, error)
}

// UploadStore keeps an uploaded image on disk for the lifetime of one request.
type UploadStore interface {
	Save(ctx context.Context, requestID entities.StylingRequestID, image []byte, ext string) (string, error)
	Remove(path string) error
}
