package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// ProductRepository productos en memoria.
type ProductRepository struct {
	s    *Store
	inTx bool
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	for _, existing := range r.s.products {
		if existing.ID == p.ID || (existing.VendorID == p.VendorID && existing.Slug == p.Slug) {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyProduct(r.s.products[id]), nil
}

func (r *ProductRepository) GetByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.products {
		if existing.ID != p.ID && existing.VendorID == p.VendorID && existing.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepository) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var list []*entity.Product
	for _, p := range r.s.products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.VendorID != "" && p.VendorID != f.VendorID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.OnlyApproved {
			v, ok := r.s.vendors[p.VendorID]
			if !ok || !v.IsApproved() {
				continue
			}
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		list = append(list, copyProduct(p))
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch f.Sort {
		case "price_asc":
			return a.Price.LessThan(b.Price)
		case "price_desc":
			return a.Price.GreaterThan(b.Price)
		case "name":
			return a.Name < b.Name
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepository) DecrementStock(_ context.Context, productID string, qty int) error {
	defer r.s.lockWrite(r.inTx)()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *ProductRepository) IncrementStock(_ context.Context, productID string, qty int) error {
	defer r.s.lockWrite(r.inTx)()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *ProductRepository) ListLowStock(_ context.Context, vendorID string, threshold, limit int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.VendorID == vendorID && p.Status == entity.ProductStatusActive && p.Stock <= threshold {
			list = append(list, copyProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Stock < list[j].Stock })
	return page(list, limit, 0), nil
}

func (r *ProductRepository) CountByVendor(_ context.Context, vendorID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if vendorID == "" || p.VendorID == vendorID {
			n++
		}
	}
	return n, nil
}
