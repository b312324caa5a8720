package repository

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock descuenta qty solo si hay stock suficiente; si no, devuelve domain.ErrInsufficientStock.
	DecrementStock(ctx context.Context, productID string, qty int) error
	IncrementStock(ctx context.Context, productID string, qty int) error
	ListLowStock(ctx context.Context, vendorID string, threshold, limit int) ([]*entity.Product, error)
	CountByVendor(ctx context.Context, vendorID string) (int, error)
}
