package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// StockMovementRepository movimientos de stock en memoria.
type StockMovementRepository struct {
	s    *Store
	inTx bool
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(s *Store) *StockMovementRepository {
	return &StockMovementRepository{s: s}
}

func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lockWrite(r.inTx)()
	mm := *m
	r.s.movements = append(r.s.movements, &mm)
	return nil
}

func (r *StockMovementRepository) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			mm := *m
			list = append(list, &mm)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}
