package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Product.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product es un artículo publicado por una tienda. Stock se descuenta al crear pedidos
// y se repone al cancelarlos (ver StockMovement).
type Product struct {
	ID             string
	VendorID       string
	CategoryID     string
	Name           string
	Slug           string
	Description    string
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal // precio tachado opcional
	Stock          int
	Unit           string // kg, pieza, litro...
	Images         []string
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive indica si el producto se puede comprar.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// MainImage devuelve la primera imagen o vacío.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductFilter criterios del listado público y de tienda.
type ProductFilter struct {
	CategoryID   string
	VendorID     string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Status       string // vacío = cualquiera
	OnlyApproved bool   // solo tiendas aprobadas
	Sort         string // newest, price_asc, price_desc, name
	Limit        int
	Offset       int
}
