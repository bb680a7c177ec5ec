package repositories

import (
	"context"
	"testing"

	"fashion-assistant/internal/domain/entities"
)

func TestMemoryStylingRepository_SaveAndFind(t *testing.T) {
	repo := NewMemoryStylingRepository(4)
	ctx := context.Background()

	result := entities.NewStylingResult("req_1")
	result.SetAdvice("- Wear loafers")

	if err := repo.SaveResult(ctx, result); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	byID, err := repo.FindResultByID(ctx, result.ID())
	if err != nil {
		t.Fatalf("FindResultByID() error = %v", err)
	}
	if byID.Advice() != "- Wear loafers" {
		t.Errorf("Unexpected advice %q", byID.Advice())
	}

	byRequest, err := repo.FindResultByRequestID(ctx, "req_1")
	if err != nil {
		t.Fatalf("FindResultByRequestID() error = %v", err)
	}
	if byRequest.ID() != result.ID() {
		t.Errorf("FindResultByRequestID() returned %s, want %s", byRequest.ID(), result.ID())
	}

	if _, err := repo.FindResultByID(ctx, "result_missing"); err == nil {
		t.Errorf("Expected error for unknown result")
	}
	if err := repo.SaveResult(ctx, nil); err == nil {
		t.Errorf("Expected error for nil result")
	}
}

func TestMemoryStylingRepository_EvictsOldest(t *testing.T) {
	repo := NewMemoryStylingRepository(2)
	ctx := context.Background()

	first := entities.NewStylingResult("req_1")
	second := entities.NewStylingResult("req_2")
	third := entities.NewStylingResult("req_3")

	for _, r := range []*entities.StylingResult{first, second, third} {
		if err := repo.SaveResult(ctx, r); err != nil {
			t.Fatalf("SaveResult() error = %v", err)
		}
	}

	if _, err := repo.FindResultByID(ctx, first.ID()); err == nil {
		t.Errorf("Oldest result should have been evicted")
	}
	if _, err := repo.FindResultByRequestID(ctx, "req_1"); err == nil {
		t.Errorf("Request index should drop evicted results")
	}
	for _, r := range []*entities.StylingResult{second, third} {
		if _, err := repo.FindResultByID(ctx, r.ID()); err != nil {
			t.Errorf("Result %s should still be cached: %v", r.ID(), err)
		}
	}
}

func TestMemoryStylingRepository_ResaveRefreshes(t *testing.T) {
	repo := NewMemoryStylingRepository(2)
	ctx := context.Background()

	first := entities.NewStylingResult("req_1")
	second := entities.NewStylingResult("req_2")
	_ = repo.SaveResult(ctx, first)
	_ = repo.SaveResult(ctx, second)
	_ = repo.SaveResult(ctx, first)
	_ = repo.SaveResult(ctx, entities.NewStylingResult("req_3"))

	if _, err := repo.FindResultByID(ctx, first.ID()); err != nil {
		t.Errorf("Re-saved result should survive eviction: %v", err)
	}
	if _, err := repo.FindResultByID(ctx, second.ID()); err == nil {
		t.Errorf("Least recently saved result should be evicted")
	}
}

func TestNewMemoryStylingRepository_DefaultCapacity(t *testing.T) {
	repo := NewMemoryStylingRepository(0).(*MemoryStylingRepository)
	if repo.capacity != DefaultResultCacheSize {
		t.Errorf("capacity = %d, want %d", repo.capacity, DefaultResultCacheSize)
	}
}
