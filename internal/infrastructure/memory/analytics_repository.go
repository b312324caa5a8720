package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// AnalyticsRepository agregados calculados recorriendo el almacén.
type AnalyticsRepository struct {
	s *Store
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(s *Store) *AnalyticsRepository {
	return &AnalyticsRepository{s: s}
}

func matches(o *entity.Order, vendorID, customerID string) bool {
	return (vendorID == "" || o.VendorID == vendorID) && (customerID == "" || o.CustomerID == customerID)
}

func (r *AnalyticsRepository) CountOrdersByStatus(_ context.Context, vendorID, customerID string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, o := range r.s.orders {
		if matches(o, vendorID, customerID) {
			out[o.Status]++
		}
	}
	return out, nil
}

func (r *AnalyticsRepository) PaidRevenue(_ context.Context, vendorID, customerID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, o := range r.s.orders {
		if matches(o, vendorID, customerID) && o.IsPaid() {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func (r *AnalyticsRepository) TopProducts(_ context.Context, vendorID string, limit int) ([]repository.ProductSales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	acc := make(map[string]*repository.ProductSales)
	for _, o := range r.s.orders {
		if !matches(o, vendorID, "") || o.Status == entity.OrderStatusCancelled {
			continue
		}
		for _, it := range o.Items {
			ps, ok := acc[it.ProductID]
			if !ok {
				ps = &repository.ProductSales{ProductID: it.ProductID, ProductName: it.ProductName, Revenue: decimal.Zero}
				acc[it.ProductID] = ps
			}
			ps.QuantitySold += it.Quantity
			ps.Revenue = ps.Revenue.Add(it.Subtotal)
		}
	}
	list := make([]repository.ProductSales, 0, len(acc))
	for _, ps := range acc {
		list = append(list, *ps)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].QuantitySold != list[j].QuantitySold {
			return list[i].QuantitySold > list[j].QuantitySold
		}
		return list[i].ProductName < list[j].ProductName
	})
	return page(list, limit, 0), nil
}

func (r *AnalyticsRepository) CountProducts(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.products), nil
}

func (r *AnalyticsRepository) ListCustomers(_ context.Context, limit, offset int) ([]*entity.CustomerSummary, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.CustomerSummary
	for _, u := range r.s.users {
		if u.Role == entity.RoleCustomer {
			list = append(list, r.summary(u))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].User.CreatedAt.After(list[j].User.CreatedAt) })
	return page(list, limit, offset), len(list), nil
}

func (r *AnalyticsRepository) GetCustomer(_ context.Context, userID string) (*entity.CustomerSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[userID]
	if !ok || u.Role != entity.RoleCustomer {
		return nil, nil
	}
	return r.summary(u), nil
}

// summary requiere el lock de lectura tomado.
func (r *AnalyticsRepository) summary(u *entity.User) *entity.CustomerSummary {
	cs := &entity.CustomerSummary{User: *u, TotalSpent: decimal.Zero}
	for _, o := range r.s.orders {
		if o.CustomerID != u.ID {
			continue
		}
		cs.OrderCount++
		if o.IsPaid() {
			cs.TotalSpent = cs.TotalSpent.Add(o.Total)
		}
		if cs.LastOrderAt == nil || o.CreatedAt.After(*cs.LastOrderAt) {
			t := o.CreatedAt
			cs.LastOrderAt = &t
		}
	}
	return cs
}
