package repository

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/cart"
)

// CartStore persistencia del carrito por usuario (Redis en producción).
// Load devuelve un carrito vacío cuando el usuario no tiene uno guardado.
type CartStore interface {
	Load(ctx context.Context, userID string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, userID string) error
}
