package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"fashion-assistant/internal/domain/entities"
	domainrepos "fashion-assistant/internal/domain/repositories"
)

// TempUploadStore writes each upload to its own file so concurrent requests
// never share a path.
type TempUploadStore struct {
	dir string
}

func NewTempUploadStore(dir string) (domainrepos.UploadStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &TempUploadStore{dir: dir}, nil
}

func (s *TempUploadStore) Save(ctx context.Context, requestID entities.StylingRequestID, image []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("clothing_%s_%s%s", requestID, uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, image, 0o600); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	slog.Debug("SaveUpload", "path", path, "bytes", len(image))
	return path, nil
}

// Remove ignores files that are already gone.
func (s *TempUploadStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}
