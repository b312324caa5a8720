package ports

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// Notifier avisos por correo. Los casos de uso lo llaman después de confirmar la
// operación; un error se registra en log y no revierte nada.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *entity.Order, customer *entity.User) error
	OrderStatusChanged(ctx context.Context, order *entity.Order, customer *entity.User) error
	VendorStatusChanged(ctx context.Context, vendor *entity.Vendor, owner *entity.User) error
}
