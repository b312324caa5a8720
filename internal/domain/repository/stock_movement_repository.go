package repository

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// StockMovementRepository registro de auditoría de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
