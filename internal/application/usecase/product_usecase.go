package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/cloudinary"
	"github.com/jhoicas/supermall-api/pkg/slug"
)

// Tamaño de la miniatura que acompaña cada producto en los listados.
const (
	thumbWidth  = 400
	thumbHeight = 400
)

// StockTxRunner ejecuta fn en una transacción con los repos de producto y movimientos.
// Lo implementan los TxRunner de postgres y memory.
type StockTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// ProductUseCase catálogo de productos. El stock solo cambia vía movimientos registrados,
// en la misma transacción que el cambio.
type ProductUseCase struct {
	repo         repository.ProductRepository
	vendorRepo   repository.VendorRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
	txRunner     StockTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
	txRunner StockTxRunner,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, vendorRepo: vendorRepo, categoryRepo: categoryRepo, movementRepo: movementRepo, txRunner: txRunner}
}

// Create publica un producto en la tienda del actor. La tienda debe estar aprobada.
func (uc *ProductUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if actor.VendorID == "" {
		return nil, domain.ErrVendorNotApproved
	}
	vendor, err := uc.vendorRepo.GetByID(ctx, actor.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil || !vendor.IsApproved() {
		return nil, domain.ErrVendorNotApproved
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := validatePrices(in.Price, in.CompareAtPrice); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
	}
	if err := validateImages(in.Images); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	base := slug.Make(name)
	if base == "" {
		return nil, fmt.Errorf("%w: nombre de producto", domain.ErrInvalidInput)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "piece"
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:             uuid.New().String(),
		VendorID:       vendor.ID,
		CategoryID:     in.CategoryID,
		Name:           name,
		Slug:           base,
		Description:    in.Description,
		Price:          in.Price,
		CompareAtPrice: in.CompareAtPrice,
		Stock:          in.Stock,
		Unit:           unit,
		Images:         in.Images,
		Status:         entity.ProductStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// Homónimo dentro de la misma tienda: slug con sufijo.
	err = uc.createWithStock(ctx, actor, p)
	if errors.Is(err, domain.ErrDuplicate) {
		p.Slug = slug.WithSuffix(base, p.ID[:8])
		err = uc.createWithStock(ctx, actor, p)
	}
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// createWithStock inserta el producto y, si trae stock inicial, su movimiento de reposición.
func (uc *ProductUseCase) createWithStock(ctx context.Context, actor dto.Actor, p *entity.Product) error {
	return uc.txRunner.RunOrder(ctx, func(_ repository.OrderRepository, productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		if p.Stock == 0 {
			return nil
		}
		if err := movementRepo.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Delta:     p.Stock,
			Reason:    entity.StockReasonRestock,
			UserID:    actor.UserID,
			CreatedAt: p.CreatedAt,
		}); err != nil {
			return fmt.Errorf("movimiento de stock inicial: %w", err)
		}
		return nil
	})
}

// Get detalle de un producto. Inactivos o de tiendas no aprobadas solo los ven su tienda y el admin.
func (uc *ProductUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if actor.IsAdmin() || (actor.VendorID != "" && actor.VendorID == p.VendorID) {
		return ToProductResponse(p), nil
	}
	if !p.IsActive() {
		return nil, domain.ErrNotFound
	}
	vendor, err := uc.vendorRepo.GetByID(ctx, p.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil || !vendor.IsApproved() {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(p), nil
}

// List listado público: solo productos activos de tiendas aprobadas.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	f, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	f.Status = entity.ProductStatusActive
	f.OnlyApproved = true
	return uc.list(ctx, f)
}

// ListMine catálogo completo de la tienda del actor, incluidos los inactivos.
func (uc *ProductUseCase) ListMine(ctx context.Context, actor dto.Actor, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if actor.VendorID == "" {
		return nil, domain.ErrVendorNotApproved
	}
	f, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	f.VendorID = actor.VendorID
	return uc.list(ctx, f)
}

func (uc *ProductUseCase) list(ctx context.Context, f entity.ProductFilter) (*dto.ProductListResponse, error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Update actualización parcial por la tienda dueña o el admin.
func (uc *ProductUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		s := slug.Make(name)
		if s == "" {
			return nil, fmt.Errorf("%w: nombre de producto", domain.ErrInvalidInput)
		}
		p.Name = name
		p.Slug = s
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CompareAtPrice != nil {
		p.CompareAtPrice = in.CompareAtPrice
	}
	if err := validatePrices(p.Price, p.CompareAtPrice); err != nil {
		return nil, err
	}
	if in.Unit != nil {
		p.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Images != nil {
		if err := validateImages(in.Images); err != nil {
			return nil, err
		}
		p.Images = in.Images
	}
	if in.Status != nil {
		if *in.Status != entity.ProductStatusActive && *in.Status != entity.ProductStatusInactive {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		p.Status = *in.Status
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			p.Slug = slug.WithSuffix(p.Slug, p.ID[:8])
			err = uc.repo.Update(ctx, p)
		}
		if err != nil {
			return nil, err
		}
	}
	return ToProductResponse(p), nil
}

// Delete elimina el producto. Los pedidos conservan nombre y precio copiados en sus líneas.
func (uc *ProductUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// AdjustStock reposición o ajuste manual. El stock nunca queda negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, actor dto.Actor, id string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Delta == 0 {
		return nil, fmt.Errorf("%w: delta debe ser distinto de cero", domain.ErrInvalidInput)
	}
	reason := in.Reason
	if reason == "" {
		reason = entity.StockReasonAdjustment
	}
	if reason != entity.StockReasonRestock && reason != entity.StockReasonAdjustment {
		return nil, fmt.Errorf("%w: motivo %q", domain.ErrInvalidInput, reason)
	}
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	var updated *entity.Product
	err := uc.txRunner.RunOrder(ctx, func(_ repository.OrderRepository, productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
		var err error
		if in.Delta > 0 {
			err = productRepo.IncrementStock(ctx, id, in.Delta)
		} else {
			err = productRepo.DecrementStock(ctx, id, -in.Delta)
		}
		if err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: id,
			Delta:     in.Delta,
			Reason:    reason,
			UserID:    actor.UserID,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("movimiento de stock: %w", err)
		}
		updated, err = productRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(updated), nil
}

// ListMovements historial de stock del producto (tienda dueña o admin).
func (uc *ProductUseCase) ListMovements(ctx context.Context, actor dto.Actor, id string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.movementRepo.ListByProduct(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Delta:     m.Delta,
			Reason:    m.Reason,
			Reference: m.Reference,
			UserID:    m.UserID,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// owned carga el producto y verifica que el actor pueda modificarlo.
func (uc *ProductUseCase) owned(ctx context.Context, actor dto.Actor, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && (actor.VendorID == "" || actor.VendorID != p.VendorID) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, id string) error {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	if c.Status != entity.CategoryStatusActive {
		return fmt.Errorf("%w: categoría inactiva", domain.ErrInvalidInput)
	}
	return nil
}

func validatePrices(price decimal.Decimal, compareAt *decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if compareAt != nil && compareAt.LessThanOrEqual(price) {
		return fmt.Errorf("%w: compare_at_price debe superar al precio", domain.ErrInvalidInput)
	}
	return nil
}

func validateImages(images []string) error {
	for _, img := range images {
		if !cloudinary.ValidImageURL(img) {
			return fmt.Errorf("%w: imagen %q", domain.ErrInvalidInput, img)
		}
	}
	return nil
}

func buildFilter(q dto.ProductListQuery) (entity.ProductFilter, error) {
	q.DefaultPage()
	f := entity.ProductFilter{
		CategoryID: q.CategoryID,
		VendorID:   q.VendorID,
		Search:     q.Search,
		Sort:       q.Sort,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	switch f.Sort {
	case "", "newest", "price_asc", "price_desc", "name":
	default:
		return f, fmt.Errorf("%w: orden %q", domain.ErrInvalidInput, f.Sort)
	}
	if q.MinPrice != "" {
		d, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return f, fmt.Errorf("%w: min_price", domain.ErrInvalidInput)
		}
		f.MinPrice = &d
	}
	if q.MaxPrice != "" {
		d, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return f, fmt.Errorf("%w: max_price", domain.ErrInvalidInput)
		}
		f.MaxPrice = &d
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return f, fmt.Errorf("%w: min_price mayor que max_price", domain.ErrInvalidInput)
	}
	return f, nil
}

// ToProductResponse convierte el producto a DTO con miniatura y disponibilidad.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		VendorID:       p.VendorID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Stock:          p.Stock,
		InStock:        p.Stock > 0,
		Unit:           p.Unit,
		Images:         images,
		Thumbnail:      cloudinary.Thumbnail(p.MainImage(), thumbWidth, thumbHeight),
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out
}
