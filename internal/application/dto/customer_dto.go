package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerResponse cliente con sus métricas de compra (panel admin).
type CustomerResponse struct {
	UserResponse
	OrderCount  int             `json:"order_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	LastOrderAt *time.Time      `json:"last_order_at,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// UpdateUserStatusRequest suspender o reactivar una cuenta.
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}
