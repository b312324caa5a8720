package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// CategoryRepository categorías en memoria.
type CategoryRepository struct {
	s    *Store
	inTx bool
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(s *Store) *CategoryRepository {
	return &CategoryRepository{s: s}
}

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	defer r.s.lockWrite(r.inTx)()
	for _, existing := range r.s.categories {
		if existing.ID == c.ID || existing.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	cc := *c
	r.s.categories[c.ID] = &cc
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *CategoryRepository) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Slug == slug {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) Update(_ context.Context, c *entity.Category) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.categories {
		if existing.ID != c.ID && existing.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	cc := *c
	r.s.categories[c.ID] = &cc
	return nil
}

func (r *CategoryRepository) List(_ context.Context, onlyActive bool) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if onlyActive && c.Status != entity.CategoryStatusActive {
			continue
		}
		cc := *c
		list = append(list, &cc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepository) CountProducts(_ context.Context, id string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.CategoryID == id {
			n++
		}
	}
	return n, nil
}
