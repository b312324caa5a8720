package entity

import "time"

// Estados de Category.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category agrupa productos del catálogo (jerárquica opcional).
type Category struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Slug        string // único
	Description string
	ImageURL    string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
