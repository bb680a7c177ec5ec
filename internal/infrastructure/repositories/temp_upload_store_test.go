package repositories

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTempUploadStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewTempUploadStore(dir)
	if err != nil {
		t.Fatalf("NewTempUploadStore() error = %v", err)
	}

	ctx := context.Background()
	content := []byte("image-bytes")

	first, err := store.Save(ctx, "req_1", content, ".jpg")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := store.Save(ctx, "req_1", content, ".jpg")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if first == second {
		t.Errorf("Each upload should get its own path, got %q twice", first)
	}
	if filepath.Dir(first) != dir || !strings.HasSuffix(first, ".jpg") || !strings.Contains(first, "req_1") {
		t.Errorf("Unexpected upload path %q", first)
	}

	got, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Stored content mismatch")
	}

	if err := store.Remove(first); err != nil {
		t.Errorf("Remove() error = %v", err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("Upload should be removed")
	}
	if err := store.Remove(first); err != nil {
		t.Errorf("Removing a missing file should not fail: %v", err)
	}
}

func TestTempUploadStore_CanceledContext(t *testing.T) {
	store, err := NewTempUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempUploadStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Save(ctx, "req_1", []byte("x"), ".png"); err == nil {
		t.Errorf("Expected error for canceled context")
	}
}
