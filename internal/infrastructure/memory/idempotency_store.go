package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/supermall-api/internal/application/ports"
)

// IdempotencyStore eventos de webhook ya procesados (sin expiración).
type IdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// NewIdempotencyStore construye el almacén.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{seen: make(map[string]struct{})}
}

func (s *IdempotencyStore) MarkProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}

func (s *IdempotencyStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.seen, key)
	s.mu.Unlock()
	return nil
}
