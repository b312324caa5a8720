package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para publicar un producto.
type CreateProductRequest struct {
	CategoryID     string           `json:"category_id" validate:"required,uuid"`
	Name           string           `json:"name" validate:"required,min=2,max=200"`
	Description    string           `json:"description" validate:"max=5000"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Stock          int              `json:"stock" validate:"min=0"`
	Unit           string           `json:"unit" validate:"max=30"`
	Images         []string         `json:"images" validate:"max=10,dive,url"`
}

// UpdateProductRequest actualización parcial. El stock se cambia por /stock (queda registrado).
type UpdateProductRequest struct {
	CategoryID     *string          `json:"category_id" validate:"omitempty,uuid"`
	Name           *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description    *string          `json:"description" validate:"omitempty,max=5000"`
	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Unit           *string          `json:"unit" validate:"omitempty,max=30"`
	Images         []string         `json:"images" validate:"omitempty,max=10,dive,url"`
	Status         *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// AdjustStockRequest reposición o ajuste manual de stock.
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required,ne=0"`
	Reason string `json:"reason" validate:"omitempty,oneof=restock adjustment"`
}

// ProductListQuery filtros del listado público.
type ProductListQuery struct {
	CategoryID string `query:"category"`
	VendorID   string `query:"vendor"`
	Search     string `query:"q"`
	MinPrice   string `query:"min_price"`
	MaxPrice   string `query:"max_price"`
	Sort       string `query:"sort"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string           `json:"id"`
	VendorID       string           `json:"vendor_id"`
	CategoryID     string           `json:"category_id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Stock          int              `json:"stock"`
	InStock        bool             `json:"in_stock"`
	Unit           string           `json:"unit"`
	Images         []string         `json:"images"`
	Thumbnail      string           `json:"thumbnail"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockMovementResponse movimiento de stock.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
