package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/supermall-api/internal/domain/cart"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// CartTTL vigencia de un carrito sin actividad.
const CartTTL = 30 * 24 * time.Hour

var _ repository.CartStore = (*CartStore)(nil)

// CartStore guarda el carrito de cada usuario como JSON bajo cart:<userID>.
type CartStore struct {
	client    goredis.Cmdable
	keyPrefix string
	ttl       time.Duration
}

// NewCartStore construye el almacén. ttl <= 0 usa CartTTL.
func NewCartStore(client goredis.Cmdable, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = CartTTL
	}
	return &CartStore{client: client, keyPrefix: "cart:", ttl: ttl}
}

func (s *CartStore) Load(ctx context.Context, userID string) (*cart.Cart, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return cart.New(userID), nil
		}
		return nil, fmt.Errorf("redis cart load: %w", err)
	}
	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("redis cart decode: %w", err)
	}
	c.UserID = userID
	c.Normalize()
	return &c, nil
}

// Save reescribe el carrito y renueva la expiración.
func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	c.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("redis cart encode: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+c.UserID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis cart save: %w", err)
	}
	return nil
}

func (s *CartStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis cart delete: %w", err)
	}
	return nil
}
