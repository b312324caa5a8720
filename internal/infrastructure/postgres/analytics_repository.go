package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboards y listado de clientes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func scope(vendorID, customerID string) *argList {
	a := &argList{}
	if vendorID != "" {
		a.cond("o.vendor_id = %s", vendorID)
	}
	if customerID != "" {
		a.cond("o.customer_id = %s", customerID)
	}
	return a
}

// CountOrdersByStatus cantidad de pedidos por estado.
func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context, vendorID, customerID string) (map[string]int, error) {
	a := scope(vendorID, customerID)
	rows, err := r.q.Query(ctx, `SELECT o.status, count(*) FROM orders o`+a.clause()+` GROUP BY o.status`, a.args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountOrdersByStatus: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountOrdersByStatus scan: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// PaidRevenue suma el total de los pedidos con pago capturado.
func (r *AnalyticsRepo) PaidRevenue(ctx context.Context, vendorID, customerID string) (decimal.Decimal, error) {
	a := scope(vendorID, customerID)
	a.where = append(a.where, "o.payment_status = 'paid'")
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(o.total), 0) FROM orders o`+a.clause(), a.args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.PaidRevenue: %w", err)
	}
	return total, nil
}

// TopProducts productos más vendidos (pedidos no cancelados), por unidades.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, vendorID string, limit int) ([]repository.ProductSales, error) {
	a := scope(vendorID, "")
	a.where = append(a.where, "o.status <> 'cancelled'")
	query := `
	SELECT i.product_id, MAX(i.product_name), SUM(i.quantity), SUM(i.subtotal)
	FROM order_items i
	JOIN orders o ON o.id = i.order_id` + a.clause() + `
	GROUP BY i.product_id
	ORDER BY SUM(i.quantity) DESC, MAX(i.product_name)
	LIMIT ` + a.add(limit)

	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductSales
	for rows.Next() {
		var ps repository.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.QuantitySold, &ps.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.TopProducts scan: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return n, nil
}

const customerSummaryQuery = `
	SELECT u.id, u.email, u.password_hash, u.name, u.phone, u.address, u.role, u.status, u.created_at, u.updated_at,
	       count(o.id),
	       COALESCE(SUM(o.total) FILTER (WHERE o.payment_status = 'paid'), 0),
	       MAX(o.created_at)
	FROM users u
	LEFT JOIN orders o ON o.customer_id = u.id
	WHERE u.role = 'customer'`

func scanCustomerSummary(row pgx.Row) (*entity.CustomerSummary, error) {
	var (
		cs   entity.CustomerSummary
		last *time.Time
	)
	u := &cs.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Address, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &cs.OrderCount, &cs.TotalSpent, &last)
	if err != nil {
		return nil, err
	}
	cs.LastOrderAt = last
	return &cs, nil
}

// ListCustomers clientes con sus agregados de compra, más recientes primero.
func (r *AnalyticsRepo) ListCustomers(ctx context.Context, limit, offset int) ([]*entity.CustomerSummary, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users WHERE role = 'customer'`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("analytics.ListCustomers count: %w", err)
	}
	rows, err := r.q.Query(ctx, customerSummaryQuery+`
	GROUP BY u.id
	ORDER BY u.created_at DESC
	LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analytics.ListCustomers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerSummary
	for rows.Next() {
		cs, err := scanCustomerSummary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("analytics.ListCustomers scan: %w", err)
		}
		list = append(list, cs)
	}
	return list, total, rows.Err()
}

func (r *AnalyticsRepo) GetCustomer(ctx context.Context, userID string) (*entity.CustomerSummary, error) {
	cs, err := scanCustomerSummary(r.q.QueryRow(ctx, customerSummaryQuery+` AND u.id = $1 GROUP BY u.id`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("analytics.GetCustomer: %w", err)
	}
	return cs, nil
}
