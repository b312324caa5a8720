package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/cloudinary"
	"github.com/jhoicas/supermall-api/pkg/slug"
)

// CategoryUseCase CRUD de categorías. El slug se deriva del nombre y es único.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. Un slug repetido devuelve ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	s := slug.Make(name)
	if s == "" {
		return nil, fmt.Errorf("%w: nombre de categoría", domain.ErrInvalidInput)
	}
	if in.ImageURL != "" && !cloudinary.ValidImageURL(in.ImageURL) {
		return nil, fmt.Errorf("%w: image_url", domain.ErrInvalidInput)
	}
	if in.ParentID != "" {
		if err := uc.checkParent(ctx, "", in.ParentID); err != nil {
			return nil, err
		}
	}
	existing, err := uc.repo.GetBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	c := &entity.Category{
		ID:          uuid.New().String(),
		ParentID:    in.ParentID,
		Name:        name,
		Slug:        s,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      entity.CategoryStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Get acepta ID o slug.
func (uc *CategoryUseCase) Get(ctx context.Context, idOrSlug string) (*dto.CategoryResponse, error) {
	var (
		c   *entity.Category
		err error
	)
	if _, perr := uuid.Parse(idOrSlug); perr == nil {
		c, err = uc.repo.GetByID(ctx, idOrSlug)
	} else {
		c, err = uc.repo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// List lista categorías; el público solo ve las activas.
func (uc *CategoryUseCase) List(ctx context.Context, onlyActive bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update actualiza una categoría; cambiar el nombre regenera el slug.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		s := slug.Make(name)
		if s == "" {
			return nil, fmt.Errorf("%w: nombre de categoría", domain.ErrInvalidInput)
		}
		c.Name = name
		c.Slug = s
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.ImageURL != nil {
		if *in.ImageURL != "" && !cloudinary.ValidImageURL(*in.ImageURL) {
			return nil, fmt.Errorf("%w: image_url", domain.ErrInvalidInput)
		}
		c.ImageURL = *in.ImageURL
	}
	if in.ParentID != nil {
		if *in.ParentID != "" {
			if err := uc.checkParent(ctx, c.ID, *in.ParentID); err != nil {
				return nil, err
			}
		}
		c.ParentID = *in.ParentID
	}
	if in.Status != nil {
		if *in.Status != entity.CategoryStatusActive && *in.Status != entity.CategoryStatusInactive {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		c.Status = *in.Status
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina una categoría sin productos; con productos devuelve ErrConflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la categoría tiene %d productos", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

// checkParent valida que el padre exista y no sea la propia categoría.
func (uc *CategoryUseCase) checkParent(ctx context.Context, selfID, parentID string) error {
	if parentID == selfID {
		return fmt.Errorf("%w: una categoría no puede ser su propio padre", domain.ErrInvalidInput)
	}
	parent, err := uc.repo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%w: categoría padre", domain.ErrNotFound)
	}
	if parent.ParentID == selfID && selfID != "" {
		return fmt.Errorf("%w: ciclo en la jerarquía de categorías", domain.ErrInvalidInput)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
