package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// VendorRepository tiendas en memoria.
type VendorRepository struct {
	s    *Store
	inTx bool
}

var _ repository.VendorRepository = (*VendorRepository)(nil)

// NewVendorRepository construye el repositorio.
func NewVendorRepository(s *Store) *VendorRepository {
	return &VendorRepository{s: s}
}

func (r *VendorRepository) Create(_ context.Context, v *entity.Vendor) error {
	defer r.s.lockWrite(r.inTx)()
	for _, existing := range r.s.vendors {
		if existing.ID == v.ID || existing.OwnerID == v.OwnerID || existing.Slug == v.Slug {
			return domain.ErrDuplicate
		}
	}
	vv := *v
	r.s.vendors[v.ID] = &vv
	return nil
}

func (r *VendorRepository) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vendors[id]
	if !ok {
		return nil, nil
	}
	vv := *v
	return &vv, nil
}

func (r *VendorRepository) GetBySlug(_ context.Context, slug string) (*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.vendors {
		if v.Slug == slug {
			vv := *v
			return &vv, nil
		}
	}
	return nil, nil
}

func (r *VendorRepository) GetByOwner(_ context.Context, ownerID string) (*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.vendors {
		if v.OwnerID == ownerID {
			vv := *v
			return &vv, nil
		}
	}
	return nil, nil
}

func (r *VendorRepository) Update(_ context.Context, v *entity.Vendor) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.vendors[v.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.vendors {
		if existing.ID != v.ID && existing.Slug == v.Slug {
			return domain.ErrDuplicate
		}
	}
	vv := *v
	r.s.vendors[v.ID] = &vv
	return nil
}

func (r *VendorRepository) UpdateStatus(_ context.Context, id, status string) error {
	defer r.s.lockWrite(r.inTx)()
	v, ok := r.s.vendors[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	return nil
}

func (r *VendorRepository) List(_ context.Context, status string, limit, offset int) ([]*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Vendor
	for _, v := range r.s.vendors {
		if status == "" || v.Status == status {
			vv := *v
			list = append(list, &vv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ShopName < list[j].ShopName })
	return page(list, limit, offset), nil
}

func (r *VendorRepository) CountByStatus(_ context.Context, status string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, v := range r.s.vendors {
		if status == "" || v.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *VendorRepository) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.vendors[id]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.orders {
		if o.VendorID == id {
			return domain.ErrConflict
		}
	}
	for pid, p := range r.s.products {
		if p.VendorID == id {
			delete(r.s.products, pid)
		}
	}
	delete(r.s.vendors, id)
	return nil
}
