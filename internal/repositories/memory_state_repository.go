package repositories

import (
	"context"
	"sync"

	"envy/internal/store"
)

// MemoryStateRepository keeps the serialized aggregate in process memory. State is lost on restart.
type MemoryStateRepository struct {
	mu  sync.Mutex
	raw []byte
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{}
}

func (r *MemoryStateRepository) Load(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raw == nil {
		return nil, store.ErrNoState
	}
	return append([]byte(nil), r.raw...), nil
}

func (r *MemoryStateRepository) Save(ctx context.Context, raw []byte) error {
	r.mu.Lock()
	r.raw = append([]byte(nil), raw...)
	r.mu.Unlock()
	return nil
}

func (r *MemoryStateRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.raw = nil
	r.mu.Unlock()
	return nil
}

func (r *MemoryStateRepository) Driver() string { return "memory" }

func (r *MemoryStateRepository) Ping(ctx context.Context) error { return nil }
