package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/cloudinary"
	"github.com/jhoicas/supermall-api/pkg/logger"
	"github.com/jhoicas/supermall-api/pkg/slug"
)

// VendorUseCase alta, aprobación y mantenimiento de tiendas.
type VendorUseCase struct {
	repo     repository.VendorRepository
	userRepo repository.UserRepository
	notifier ports.Notifier
	log      *logger.Logger
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository, userRepo repository.UserRepository, notifier ports.Notifier, log *logger.Logger) *VendorUseCase {
	return &VendorUseCase{repo: repo, userRepo: userRepo, notifier: notifier, log: log.Component("vendors")}
}

// Apply crea la tienda del vendedor en estado pending. Una por usuario.
func (uc *VendorUseCase) Apply(ctx context.Context, ownerID string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	if owner.Role != entity.RoleVendor {
		return nil, fmt.Errorf("%w: solo usuarios vendedores abren tienda", domain.ErrForbidden)
	}
	existing, err := uc.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el usuario ya tiene una tienda", domain.ErrDuplicate)
	}
	if in.LogoURL != "" && !cloudinary.ValidImageURL(in.LogoURL) {
		return nil, fmt.Errorf("%w: logo_url", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(in.ShopName)
	base := slug.Make(name)
	if base == "" {
		return nil, fmt.Errorf("%w: nombre de tienda", domain.ErrInvalidInput)
	}
	email := in.Email
	if email == "" {
		email = owner.Email
	}
	now := time.Now().UTC()
	v := &entity.Vendor{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		ShopName:    name,
		Slug:        base,
		Description: in.Description,
		Village:     strings.TrimSpace(in.Village),
		District:    strings.TrimSpace(in.District),
		State:       strings.TrimSpace(in.State),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       email,
		LogoURL:     in.LogoURL,
		Status:      entity.VendorStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Slug ocupado por otra tienda: se agrega un sufijo corto.
	if err := uc.repo.Create(ctx, v); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		v.Slug = slug.WithSuffix(base, v.ID[:8])
		if err := uc.repo.Create(ctx, v); err != nil {
			return nil, err
		}
	}
	uc.log.Info().Str("vendor_id", v.ID).Str("owner_id", ownerID).Msg("solicitud de tienda registrada")
	return toVendorResponse(v), nil
}

// Get obtiene una tienda por ID o slug. Las no aprobadas solo las ven su dueño y el admin.
func (uc *VendorUseCase) Get(ctx context.Context, actor dto.Actor, idOrSlug string) (*dto.VendorResponse, error) {
	v, err := uc.find(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !v.IsApproved() && !actor.IsAdmin() && v.OwnerID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(v), nil
}

// GetMine tienda del usuario autenticado.
func (uc *VendorUseCase) GetMine(ctx context.Context, ownerID string) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(v), nil
}

// ByOwner resuelve la tienda de un usuario (middleware de tienda). (nil, nil) si no tiene.
func (uc *VendorUseCase) ByOwner(ctx context.Context, ownerID string) (*entity.Vendor, error) {
	return uc.repo.GetByOwner(ctx, ownerID)
}

// List el público ve solo aprobadas; el admin puede filtrar por cualquier estado.
func (uc *VendorUseCase) List(ctx context.Context, actor dto.Actor, status string, page dto.PageRequest) (*dto.VendorListResponse, error) {
	page.DefaultPage()
	if !actor.IsAdmin() {
		status = entity.VendorStatusApproved
	} else if status != "" && !entity.ValidVendorStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.repo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVendorResponse(v))
	}
	return &dto.VendorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update datos de la tienda (dueño o admin). El estado se cambia con UpdateStatus.
func (uc *VendorUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && v.OwnerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if in.ShopName != nil {
		name := strings.TrimSpace(*in.ShopName)
		s := slug.Make(name)
		if s == "" {
			return nil, fmt.Errorf("%w: nombre de tienda", domain.ErrInvalidInput)
		}
		v.ShopName = name
		v.Slug = s
	}
	if in.LogoURL != nil {
		if *in.LogoURL != "" && !cloudinary.ValidImageURL(*in.LogoURL) {
			return nil, fmt.Errorf("%w: logo_url", domain.ErrInvalidInput)
		}
		v.LogoURL = *in.LogoURL
	}
	setIf(&v.Description, in.Description)
	setIf(&v.Village, in.Village)
	setIf(&v.District, in.District)
	setIf(&v.State, in.State)
	setIf(&v.Phone, in.Phone)
	setIf(&v.Email, in.Email)
	v.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// UpdateStatus decisión del admin (aprobar, rechazar, suspender). Se avisa al dueño por correo.
func (uc *VendorUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateVendorStatusRequest) (*dto.VendorResponse, error) {
	if !entity.ValidVendorStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if v.Status == in.Status {
		return toVendorResponse(v), nil
	}
	if err := uc.repo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	prev := v.Status
	v.Status = in.Status
	v.UpdatedAt = time.Now().UTC()
	uc.log.Info().Str("vendor_id", id).Str("from", prev).Str("to", in.Status).Msg("estado de tienda actualizado")

	if uc.notifier != nil {
		owner, err := uc.userRepo.GetByID(ctx, v.OwnerID)
		if err == nil && owner != nil {
			if err := uc.notifier.VendorStatusChanged(ctx, v, owner); err != nil {
				uc.log.Warn().Err(err).Str("vendor_id", id).Msg("no se pudo enviar el correo de estado de tienda")
			}
		}
	}
	return toVendorResponse(v), nil
}

// Delete elimina la tienda (admin). Con pedidos registrados devuelve ErrConflict.
func (uc *VendorUseCase) Delete(ctx context.Context, id string) error {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *VendorUseCase) find(ctx context.Context, idOrSlug string) (*entity.Vendor, error) {
	var (
		v   *entity.Vendor
		err error
	)
	if _, perr := uuid.Parse(idOrSlug); perr == nil {
		v, err = uc.repo.GetByID(ctx, idOrSlug)
	} else {
		v, err = uc.repo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		ShopName:    v.ShopName,
		Slug:        v.Slug,
		Description: v.Description,
		Village:     v.Village,
		District:    v.District,
		State:       v.State,
		Phone:       v.Phone,
		Email:       v.Email,
		LogoURL:     v.LogoURL,
		Status:      v.Status,
		IsApproved:  v.IsApproved(),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
