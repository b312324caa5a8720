package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerSummary agrega los datos de compra de un cliente (listado de /api/customers).
type CustomerSummary struct {
	User        User
	OrderCount  int
	TotalSpent  decimal.Decimal // suma de pedidos pagados
	LastOrderAt *time.Time
}
