package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Estados del pago.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Métodos de pago.
const (
	PaymentMethodCard = "card" // Stripe PaymentIntent
	PaymentMethodCOD  = "cod"  // contra entrega
)

// Order es la compra de un cliente a una tienda. Un checkout con varias tiendas genera un pedido por tienda.
type Order struct {
	ID              string
	OrderNumber     string // ORDER-<millis>-<RANDOM>, único
	CustomerID      string
	VendorID        string
	Items           []OrderItem
	Subtotal        decimal.Decimal
	ShippingFee     decimal.Decimal
	Total           decimal.Decimal
	Status          string
	PaymentStatus   string
	PaymentMethod   string
	PaymentIntentID string
	ShippingAddress string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea del pedido con nombre y precio congelados al momento de la compra.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

// IsPaid indica si el pago fue capturado.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// OrderFilter criterios de listado de pedidos (el alcance por rol lo decide el caso de uso).
type OrderFilter struct {
	CustomerID string
	VendorID   string
	Status     string
	Limit      int
	Offset     int
}
