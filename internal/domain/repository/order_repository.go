package repository

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (cabecera + líneas).
type OrderRepository interface {
	// Create inserta cabecera y líneas. Un número de pedido repetido devuelve domain.ErrDuplicate.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByNumber(ctx context.Context, number string) (*entity.Order, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*entity.Order, error)
	List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int, error)
	// UpdateStatus cambia el estado solo si el actual sigue siendo from; si no, domain.ErrConflict.
	UpdateStatus(ctx context.Context, id, from, to string) error
	UpdatePayment(ctx context.Context, id, paymentStatus, intentID string) error
}
