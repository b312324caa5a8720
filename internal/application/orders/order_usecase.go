package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/order"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

// OrderUseCase consulta y ciclo de vida de pedidos.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	txRunner  TxRunner
	notifier  ports.Notifier
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	txRunner TxRunner,
	notifier ports.Notifier,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		txRunner:  txRunner,
		notifier:  notifier,
		log:       log.Component("orders"),
	}
}

// List lista pedidos según el rol: cliente los suyos, vendedor los de su tienda, admin todos.
func (uc *OrderUseCase) List(ctx context.Context, actor dto.Actor, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	q.DefaultPage()
	if q.Status != "" && !order.ValidStatus(q.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, q.Status)
	}
	filter := entity.OrderFilter{Status: q.Status, Limit: q.Limit, Offset: q.Offset}
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleVendor:
		if actor.VendorID == "" {
			return nil, domain.ErrVendorNotApproved
		}
		filter.VendorID = actor.VendorID
	case entity.RoleCustomer:
		filter.CustomerID = actor.UserID
	default:
		return nil, domain.ErrForbidden
	}
	list, total, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders: listar: %w", err)
	}
	return &dto.OrderListResponse{
		Items: ToOrderResponses(list),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Get devuelve un pedido visible para el actor.
func (uc *OrderUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// GetByNumber busca por número de pedido (rastreo).
func (uc *OrderUseCase) GetByNumber(ctx context.Context, actor dto.Actor, number string) (*dto.OrderResponse, error) {
	if !order.ValidNumber(number) {
		return nil, fmt.Errorf("%w: número de pedido %q", domain.ErrInvalidInput, number)
	}
	o, err := uc.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("orders: obtener por número: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !canSee(actor, o) {
		return nil, domain.ErrForbidden
	}
	return ToOrderResponse(o), nil
}

// UpdateStatus avanza el pedido (tienda dueña o admin). Cancelar repone el stock.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor dto.Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !order.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == entity.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	if err := uc.transition(ctx, actor, o, in.Status); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Cancel cancelación por el cliente, solo antes de que la tienda empiece a preparar el pedido.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !order.CustomerCanCancel(o.Status) {
		return nil, fmt.Errorf("%w: el pedido ya está en estado %s", domain.ErrInvalidTransition, o.Status)
	}
	if err := uc.transition(ctx, actor, o, entity.OrderStatusCancelled); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

func (uc *OrderUseCase) transition(ctx context.Context, actor dto.Actor, o *entity.Order, to string) error {
	from := o.Status
	if !order.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	now := time.Now().UTC()
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := orderRepo.UpdateStatus(ctx, o.ID, from, to); err != nil {
			return err
		}
		// Contra entrega: el cobro ocurre al entregar.
		if to == entity.OrderStatusDelivered && o.PaymentMethod == entity.PaymentMethodCOD && !o.IsPaid() {
			if err := orderRepo.UpdatePayment(ctx, o.ID, entity.PaymentStatusPaid, ""); err != nil {
				return err
			}
			o.PaymentStatus = entity.PaymentStatusPaid
		}
		if to != entity.OrderStatusCancelled {
			return nil
		}
		for _, it := range o.Items {
			err := productRepo.IncrementStock(ctx, it.ProductID, it.Quantity)
			if errors.Is(err, domain.ErrNotFound) {
				// producto borrado: no hay stock que devolver
				continue
			}
			if err != nil {
				return err
			}
			if err := movementRepo.Create(ctx, &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: it.ProductID,
				Delta:     it.Quantity,
				Reason:    entity.StockReasonCancel,
				Reference: o.ID,
				UserID:    actor.UserID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = now

	uc.log.Info().
		Str("order_id", o.ID).
		Str("from", from).
		Str("to", to).
		Str("by", actor.UserID).
		Msg("estado de pedido actualizado")
	if to == entity.OrderStatusCancelled && o.IsPaid() {
		uc.log.Warn().Str("order_id", o.ID).Msg("pedido pagado cancelado: pendiente de reembolso")
	}
	uc.notifyStatus(ctx, o)
	return nil
}

func (uc *OrderUseCase) notifyStatus(ctx context.Context, o *entity.Order) {
	if uc.notifier == nil {
		return
	}
	customer, err := uc.userRepo.GetByID(ctx, o.CustomerID)
	if err != nil || customer == nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("cliente del pedido no encontrado para notificar")
		return
	}
	if err := uc.notifier.OrderStatusChanged(ctx, o, customer); err != nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("no se pudo enviar el correo de estado")
	}
}

func (uc *OrderUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Order, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("orders: obtener: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !canSee(actor, o) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func canSee(actor dto.Actor, o *entity.Order) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleVendor:
		return actor.VendorID != "" && o.VendorID == actor.VendorID
	case entity.RoleCustomer:
		return o.CustomerID == actor.UserID
	}
	return false
}
