package repository

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, onlyActive bool) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
	CountProducts(ctx context.Context, id string) (int, error)
}
