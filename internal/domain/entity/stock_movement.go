package entity

import "time"

// Motivos de StockMovement.
const (
	StockReasonOrder      = "order"
	StockReasonCancel     = "cancel"
	StockReasonRestock    = "restock"
	StockReasonAdjustment = "adjustment"
)

// StockMovement registra cada cambio de stock de un producto (auditoría para la tienda).
type StockMovement struct {
	ID        string
	ProductID string
	Delta     int    // positivo entra, negativo sale
	Reason    string // order, cancel, restock, adjustment
	Reference string // ID del pedido cuando aplica
	UserID    string
	CreatedAt time.Time
}
