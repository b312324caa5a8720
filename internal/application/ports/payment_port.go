package ports

import (
	"context"
	"errors"
)

// Estados de PaymentIntent que interesan al marketplace (nombres de Stripe).
const (
	IntentSucceeded             = "succeeded"
	IntentRequiresPaymentMethod = "requires_payment_method"
	IntentCanceled              = "canceled"
	IntentProcessing            = "processing"
)

// Tipos de evento de webhook que se procesan.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// ErrInvalidSignature firma de webhook inválida o expirada.
var ErrInvalidSignature = errors.New("firma de webhook inválida")

// PaymentIntent vista mínima de un intento de pago del proveedor.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64 // unidades menores (paise)
	Currency     string
	Status       string
	Metadata     map[string]string
}

// WebhookEvent evento ya verificado del proveedor. Intent viene poblado para eventos payment_intent.*.
type WebhookEvent struct {
	ID     string
	Type   string
	Intent *PaymentIntent
}

// CreateIntentInput datos para crear el intento de pago de un pedido.
type CreateIntentInput struct {
	Amount         int64
	Currency       string
	Description    string
	ReceiptEmail   string
	Metadata       map[string]string
	IdempotencyKey string
}

// PaymentGateway puerto hacia la pasarela de pagos (Stripe).
type PaymentGateway interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (*PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
	Refund(ctx context.Context, intentID string) error
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
	PublishableKey() string
}

// IdempotencyStore recuerda eventos ya procesados. MarkProcessed devuelve false si el
// evento ya estaba registrado.
type IdempotencyStore interface {
	MarkProcessed(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}
