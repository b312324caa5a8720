package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supermall-api/internal/application/auth"
	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

// CustomerUseCase consulta y moderación de clientes (solo admin).
type CustomerUseCase struct {
	analytics repository.AnalyticsRepository
	userRepo  repository.UserRepository
	log       *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(analytics repository.AnalyticsRepository, userRepo repository.UserRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{analytics: analytics, userRepo: userRepo, log: log.Component("customers")}
}

// List clientes con pedidos y gasto acumulado.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.analytics.ListCustomers(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get detalle de un cliente.
func (uc *CustomerUseCase) Get(ctx context.Context, userID string) (*dto.CustomerResponse, error) {
	c, err := uc.analytics.GetCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// UpdateStatus suspende o reactiva una cuenta. Los admin no se suspenden por aquí.
func (uc *CustomerUseCase) UpdateStatus(ctx context.Context, userID string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	if in.Status != entity.UserStatusActive && in.Status != entity.UserStatusSuspended {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.Role == entity.RoleAdmin {
		return nil, fmt.Errorf("%w: no se puede cambiar el estado de un admin", domain.ErrForbidden)
	}
	if u.Status != in.Status {
		u.Status = in.Status
		u.UpdatedAt = time.Now().UTC()
		if err := uc.userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
		uc.log.Info().Str("user_id", userID).Str("status", in.Status).Msg("estado de usuario actualizado")
	}
	return auth.ToUserResponse(u), nil
}

func toCustomerResponse(c *entity.CustomerSummary) dto.CustomerResponse {
	return dto.CustomerResponse{
		UserResponse: *auth.ToUserResponse(&c.User),
		OrderCount:   c.OrderCount,
		TotalSpent:   c.TotalSpent,
		LastOrderAt:  c.LastOrderAt,
	}
}
