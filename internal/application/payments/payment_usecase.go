// Package payments integra los pedidos con la pasarela de pagos (PaymentIntents).
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

// PaymentUseCase intentos de pago, confirmación, webhook y reembolsos.
// gateway nil significa pasarela no configurada: todas las operaciones devuelven ErrPaymentUnavailable.
type PaymentUseCase struct {
	gateway   ports.PaymentGateway
	events    ports.IdempotencyStore
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	currency  string
	log       *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	gateway ports.PaymentGateway,
	events ports.IdempotencyStore,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	currency string,
	log *logger.Logger,
) *PaymentUseCase {
	if currency == "" {
		currency = "inr"
	}
	return &PaymentUseCase{
		gateway:   gateway,
		events:    events,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		currency:  currency,
		log:       log.Component("payments"),
	}
}

// MinorUnits convierte un importe a unidades menores (rupias → paise).
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// CreateIntent crea (o reutiliza) el PaymentIntent del pedido del cliente.
func (uc *PaymentUseCase) CreateIntent(ctx context.Context, customerID string, in dto.CreatePaymentIntentRequest) (*dto.PaymentIntentResponse, error) {
	if uc.gateway == nil {
		return nil, domain.ErrPaymentUnavailable
	}
	o, err := uc.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	if o.PaymentMethod != entity.PaymentMethodCard {
		return nil, fmt.Errorf("%w: el pedido se paga contra entrega", domain.ErrInvalidInput)
	}
	if o.IsPaid() || o.PaymentStatus == entity.PaymentStatusRefunded {
		return nil, fmt.Errorf("%w: el pedido ya fue pagado", domain.ErrConflict)
	}
	if o.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: el pedido está cancelado", domain.ErrConflict)
	}

	if o.PaymentIntentID != "" {
		pi, err := uc.gateway.GetIntent(ctx, o.PaymentIntentID)
		if err == nil && pi.Status != ports.IntentCanceled && pi.Status != ports.IntentSucceeded && pi.Amount == MinorUnits(o.Total) {
			return uc.intentResponse(pi), nil
		}
	}

	input := ports.CreateIntentInput{
		Amount:      MinorUnits(o.Total),
		Currency:    uc.currency,
		Description: "SuperMall " + o.OrderNumber,
		Metadata: map[string]string{
			"order_id":     o.ID,
			"order_number": o.OrderNumber,
			"vendor_id":    o.VendorID,
		},
		IdempotencyKey: "order-" + o.ID + "-" + o.PaymentIntentID,
	}
	if u, err := uc.userRepo.GetByID(ctx, customerID); err == nil && u != nil {
		input.ReceiptEmail = u.Email
	}
	pi, err := uc.gateway.CreateIntent(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("payments: crear intent: %w", err)
	}
	if err := uc.orderRepo.UpdatePayment(ctx, o.ID, entity.PaymentStatusPending, pi.ID); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", o.ID).Str("intent_id", pi.ID).Int64("amount", pi.Amount).Msg("payment intent creado")
	return uc.intentResponse(pi), nil
}

// Confirm consulta el intent a la pasarela y actualiza el pedido del cliente.
func (uc *PaymentUseCase) Confirm(ctx context.Context, customerID string, in dto.ConfirmPaymentRequest) (*dto.PaymentStatusResponse, error) {
	if uc.gateway == nil {
		return nil, domain.ErrPaymentUnavailable
	}
	o, err := uc.orderRepo.GetByPaymentIntent(ctx, in.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	pi, err := uc.gateway.GetIntent(ctx, in.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("payments: consultar intent: %w", err)
	}
	o, err = uc.apply(ctx, o, pi)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentStatusResponse{
		OrderID:       o.ID,
		OrderStatus:   o.Status,
		PaymentStatus: o.PaymentStatus,
		IntentStatus:  pi.Status,
	}, nil
}

// HandleWebhook procesa un evento firmado. Cada evento se aplica una sola vez.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if uc.gateway == nil {
		return domain.ErrPaymentUnavailable
	}
	ev, err := uc.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if ev.Type != ports.EventPaymentSucceeded && ev.Type != ports.EventPaymentFailed {
		uc.log.Debug().Str("event_id", ev.ID).Str("type", ev.Type).Msg("evento ignorado")
		return nil
	}
	if ev.Intent == nil {
		return fmt.Errorf("%w: evento %s sin payment intent", domain.ErrInvalidInput, ev.ID)
	}
	fresh, err := uc.events.MarkProcessed(ctx, "stripe:event:"+ev.ID)
	if err != nil {
		return fmt.Errorf("payments: idempotencia: %w", err)
	}
	if !fresh {
		uc.log.Info().Str("event_id", ev.ID).Msg("evento duplicado, se omite")
		return nil
	}

	if err := uc.handleIntentEvent(ctx, ev); err != nil {
		// Se libera la marca para que el reintento de la pasarela vuelva a procesarlo.
		if ferr := uc.events.Forget(ctx, "stripe:event:"+ev.ID); ferr != nil {
			uc.log.Warn().Err(ferr).Str("event_id", ev.ID).Msg("no se pudo liberar la marca del evento")
		}
		return err
	}
	return nil
}

func (uc *PaymentUseCase) handleIntentEvent(ctx context.Context, ev *ports.WebhookEvent) error {
	var (
		o   *entity.Order
		err error
	)
	if id := ev.Intent.Metadata["order_id"]; id != "" {
		o, err = uc.orderRepo.GetByID(ctx, id)
	} else {
		o, err = uc.orderRepo.GetByPaymentIntent(ctx, ev.Intent.ID)
	}
	if err != nil {
		return err
	}
	if o == nil {
		// Intent ajeno al marketplace (u orden borrada): no hay nada que actualizar.
		uc.log.Warn().Str("event_id", ev.ID).Str("intent_id", ev.Intent.ID).Msg("webhook sin pedido asociado")
		return nil
	}
	intent := *ev.Intent
	if ev.Type == ports.EventPaymentFailed && intent.Status == ports.IntentSucceeded {
		intent.Status = ports.IntentRequiresPaymentMethod
	}
	_, err = uc.apply(ctx, o, &intent)
	return err
}

// apply lleva el estado del intent al pedido. Un pedido reembolsado ya no cambia:
// el intent sigue en succeeded después del reembolso.
func (uc *PaymentUseCase) apply(ctx context.Context, o *entity.Order, pi *ports.PaymentIntent) (*entity.Order, error) {
	if o.PaymentStatus == entity.PaymentStatusRefunded {
		return o, nil
	}
	switch pi.Status {
	case ports.IntentSucceeded:
		if o.IsPaid() {
			return o, nil
		}
		if pi.Amount != MinorUnits(o.Total) {
			uc.log.Warn().Str("order_id", o.ID).Int64("intent_amount", pi.Amount).Msg("importe del intent distinto al total del pedido")
		}
		if err := uc.orderRepo.UpdatePayment(ctx, o.ID, entity.PaymentStatusPaid, pi.ID); err != nil {
			return nil, err
		}
		o.PaymentStatus = entity.PaymentStatusPaid
		o.PaymentIntentID = pi.ID
		if o.Status == entity.OrderStatusPending {
			err := uc.orderRepo.UpdateStatus(ctx, o.ID, entity.OrderStatusPending, entity.OrderStatusConfirmed)
			switch {
			case err == nil:
				o.Status = entity.OrderStatusConfirmed
			case errors.Is(err, domain.ErrConflict):
				// la tienda ya lo movió; el pago queda registrado igual
			default:
				return nil, err
			}
		}
		uc.log.Info().Str("order_id", o.ID).Str("intent_id", pi.ID).Msg("pago confirmado")
	case ports.IntentRequiresPaymentMethod, ports.IntentCanceled:
		if o.IsPaid() || o.PaymentStatus == entity.PaymentStatusFailed {
			return o, nil
		}
		if err := uc.orderRepo.UpdatePayment(ctx, o.ID, entity.PaymentStatusFailed, pi.ID); err != nil {
			return nil, err
		}
		o.PaymentStatus = entity.PaymentStatusFailed
		uc.log.Info().Str("order_id", o.ID).Str("intent_status", pi.Status).Msg("pago fallido")
	}
	return o, nil
}

// Refund reembolsa un pedido pagado con tarjeta (admin).
func (uc *PaymentUseCase) Refund(ctx context.Context, orderID string) (*dto.PaymentStatusResponse, error) {
	if uc.gateway == nil {
		return nil, domain.ErrPaymentUnavailable
	}
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.PaymentMethod != entity.PaymentMethodCard || o.PaymentIntentID == "" {
		return nil, fmt.Errorf("%w: solo se reembolsan pagos con tarjeta", domain.ErrInvalidInput)
	}
	if !o.IsPaid() {
		return nil, fmt.Errorf("%w: el pedido no está pagado", domain.ErrConflict)
	}
	if err := uc.gateway.Refund(ctx, o.PaymentIntentID); err != nil {
		return nil, fmt.Errorf("payments: reembolso: %w", err)
	}
	if err := uc.orderRepo.UpdatePayment(ctx, o.ID, entity.PaymentStatusRefunded, o.PaymentIntentID); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", o.ID).Str("intent_id", o.PaymentIntentID).Msg("pedido reembolsado")
	return &dto.PaymentStatusResponse{
		OrderID:       o.ID,
		OrderStatus:   o.Status,
		PaymentStatus: entity.PaymentStatusRefunded,
	}, nil
}

func (uc *PaymentUseCase) intentResponse(pi *ports.PaymentIntent) *dto.PaymentIntentResponse {
	return &dto.PaymentIntentResponse{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		PublishableKey:  uc.gateway.PublishableKey(),
		Amount:          decimal.New(pi.Amount, -2),
		Currency:        pi.Currency,
		Status:          pi.Status,
	}
}
