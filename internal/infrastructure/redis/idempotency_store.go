package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/supermall-api/internal/application/ports"
)

// EventTTL cuánto se recuerda un evento de webhook ya procesado.
const EventTTL = 24 * time.Hour

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore marca eventos procesados con SETNX, compartido entre instancias.
type IdempotencyStore struct {
	client    goredis.Cmdable
	keyPrefix string
	ttl       time.Duration
}

// NewIdempotencyStore construye el almacén. ttl <= 0 usa EventTTL.
func NewIdempotencyStore(client goredis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = EventTTL
	}
	return &IdempotencyStore{client: client, keyPrefix: "idempotency:", ttl: ttl}
}

// MarkProcessed devuelve true si la clave no existía (primera vez que se ve el evento).
func (s *IdempotencyStore) MarkProcessed(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis mark processed: %w", err)
	}
	return ok, nil
}

// Forget libera la marca para que un reintento vuelva a procesar el evento.
func (s *IdempotencyStore) Forget(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis forget: %w", err)
	}
	return nil
}
