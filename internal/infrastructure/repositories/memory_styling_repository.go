package repositories

import (
	"container/list"
	"context"
	"fmt"
	"sync"

	"fashion-assistant/internal/domain/entities"
	domainrepos "fashion-assistant/internal/domain/repositories"
)

const DefaultResultCacheSize = 32

// MemoryStylingRepository keeps the most recent results and evicts the
// oldest once capacity is reached.
type MemoryStylingRepository struct {
	capacity  int
	order     *list.List
	results   map[entities.StylingResultID]*list.Element
	byRequest map[entities.StylingRequestID]entities.StylingResultID
	mu        sync.RWMutex
}

func NewMemoryStylingRepository(capacity int) domainrepos.StylingResultRepository {
	if capacity <= 0 {
		capacity = DefaultResultCacheSize
	}
	return &MemoryStylingRepository{
		capacity:  capacity,
		order:     list.New(),
		results:   make(map[entities.StylingResultID]*list.Element),
		byRequest: make(map[entities.StylingRequestID]entities.StylingResultID),
	}
}

func (r *MemoryStylingRepository) SaveResult(ctx context.Context, result *entities.StylingResult) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if elem, exists := r.results[result.ID()]; exists {
		elem.Value = result
		r.order.MoveToBack(elem)
		r.byRequest[result.RequestID()] = result.ID()
		return nil
	}

	r.results[result.ID()] = r.order.PushBack(result)
	r.byRequest[result.RequestID()] = result.ID()

	for r.order.Len() > r.capacity {
		oldest := r.order.Front()
		evicted := r.order.Remove(oldest).(*entities.StylingResult)
		delete(r.results, evicted.ID())
		if r.byRequest[evicted.RequestID()] == evicted.ID() {
			delete(r.byRequest, evicted.RequestID())
		}
	}

	return nil
}

func (r *MemoryStylingRepository) FindResultByID(ctx context.Context, id entities.StylingResultID) (*entities.StylingResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	elem, exists := r.results[id]
	if !exists {
		return nil, fmt.Errorf("result not found: %s", id)
	}

	return elem.Value.(*entities.StylingResult), nil
}

func (r *MemoryStylingRepository) FindResultByRequestID(ctx context.Context, requestID entities.StylingRequestID) (*entities.StylingResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byRequest[requestID]
	if !exists {
		return nil, fmt.Errorf("result not found for request: %s", requestID)
	}

	return r.results[id].Value.(*entities.StylingResult), nil
}
