package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"fashion-assistant/internal/config"
	"fashion-assistant/internal/domain/valueobjects"
)

func TestNew_MissingComfyWorkflow(t *testing.T) {
	cfg := config.Config{
		GeminiAPIKey:         "test-key",
		CaptionBackend:       config.CaptionBackendGemini,
		ImageBackend:         config.ImageBackendComfyUI,
		ComfyTxt2ImgWorkflow: filepath.Join(t.TempDir(), "missing.json"),
		TempDir:              t.TempDir(),
		Catalog:              valueobjects.DefaultCatalog(),
	}

	p, err := New(context.Background(), cfg, nil)
	if err == nil {
		p.Close()
		t.Fatalf("Expected error for missing workflow")
	}
	if !strings.Contains(err.Error(), "workflow not found") {
		t.Errorf("Unexpected error %v", err)
	}
}

func TestPipeline_CloseRunsInReverse(t *testing.T) {
	var order []int
	p := &Pipeline{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return nil },
	}}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("Close order = %v, want [2 1]", order)
	}
}
