package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// OrderRepository pedidos en memoria. El número de pedido es único como en PostgreSQL.
type OrderRepository struct {
	s    *Store
	inTx bool
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository construye el repositorio.
func NewOrderRepository(s *Store) *OrderRepository {
	return &OrderRepository{s: s}
}

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	defer r.s.lockWrite(r.inTx)()
	for _, existing := range r.s.orders {
		if existing.ID == o.ID || existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyOrder(r.s.orders[id]), nil
}

func (r *OrderRepository) GetByNumber(_ context.Context, number string) (*entity.Order, error) {
	return r.find(func(o *entity.Order) bool { return o.OrderNumber == number }), nil
}

func (r *OrderRepository) GetByPaymentIntent(_ context.Context, intentID string) (*entity.Order, error) {
	if intentID == "" {
		return nil, nil
	}
	return r.find(func(o *entity.Order) bool { return o.PaymentIntentID == intentID }), nil
}

func (r *OrderRepository) find(match func(*entity.Order) bool) *entity.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if match(o) {
			return copyOrder(o)
		}
	}
	return nil
}

func (r *OrderRepository) List(_ context.Context, f entity.OrderFilter) ([]*entity.Order, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Order
	for _, o := range r.s.orders {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.VendorID != "" && o.VendorID != f.VendorID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		list = append(list, copyOrder(o))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id, from, to string) error {
	defer r.s.lockWrite(r.inTx)()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if o.Status != from {
		return domain.ErrConflict
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *OrderRepository) UpdatePayment(_ context.Context, id, paymentStatus, intentID string) error {
	defer r.s.lockWrite(r.inTx)()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.PaymentStatus = paymentStatus
	if intentID != "" {
		o.PaymentIntentID = intentID
	}
	o.UpdatedAt = time.Now().UTC()
	return nil
}
