package repository

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// VendorRepository define el puerto de persistencia para Vendor (DIP).
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Vendor, error)
	GetByOwner(ctx context.Context, ownerID string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	UpdateStatus(ctx context.Context, id, status string) error
	// List filtra por estado; status vacío lista todas.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Vendor, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	Delete(ctx context.Context, id string) error
}
