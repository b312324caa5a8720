package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/supermall-api/internal/domain/cart"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// CartStore carritos en memoria (cuando Redis no está disponible). Guarda el JSON igual
// que Redis para que Load devuelva siempre una copia independiente.
type CartStore struct {
	mu    sync.Mutex
	carts map[string][]byte
}

var _ repository.CartStore = (*CartStore)(nil)

// NewCartStore construye el almacén.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string][]byte)}
}

func (s *CartStore) Load(_ context.Context, userID string) (*cart.Cart, error) {
	s.mu.Lock()
	raw, ok := s.carts[userID]
	s.mu.Unlock()
	if !ok {
		return cart.New(userID), nil
	}
	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.UserID = userID
	c.Normalize()
	return &c, nil
}

func (s *CartStore) Save(_ context.Context, c *cart.Cart) error {
	c.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[c.UserID] = raw
	s.mu.Unlock()
	return nil
}

func (s *CartStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
	return nil
}
