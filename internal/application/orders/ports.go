package orders

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repos que tocan pedido y stock.
// Si fn devuelve error se hace rollback completo (pedido, líneas, stock y movimientos).
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
