package repository

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, id, role string) error
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
