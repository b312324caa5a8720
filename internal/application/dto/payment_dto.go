package dto

import "github.com/shopspring/decimal"

// CreatePaymentIntentRequest pago con tarjeta de un pedido.
type CreatePaymentIntentRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}

// ConfirmPaymentRequest confirmación desde el cliente tras stripe.confirmCardPayment.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required,startswith=pi_"`
}

// PaymentIntentResponse datos que necesita Stripe.js en el navegador.
type PaymentIntentResponse struct {
	PaymentIntentID string          `json:"payment_intent_id"`
	ClientSecret    string          `json:"client_secret"`
	PublishableKey  string          `json:"publishable_key"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
}

// PaymentStatusResponse estado del pago tras confirmar o reembolsar.
type PaymentStatusResponse struct {
	OrderID       string `json:"order_id"`
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	IntentStatus  string `json:"intent_status,omitempty"`
}
