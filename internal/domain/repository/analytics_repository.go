package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// ProductSales ventas agregadas de un producto (top productos del dashboard de tienda).
type ProductSales struct {
	ProductID    string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para los dashboards y el listado de clientes.
// vendorID / customerID vacíos = todo el marketplace.
type AnalyticsRepository interface {
	CountOrdersByStatus(ctx context.Context, vendorID, customerID string) (map[string]int, error)
	PaidRevenue(ctx context.Context, vendorID, customerID string) (decimal.Decimal, error)
	TopProducts(ctx context.Context, vendorID string, limit int) ([]ProductSales, error)
	CountProducts(ctx context.Context) (int, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]*entity.CustomerSummary, int, error)
	GetCustomer(ctx context.Context, userID string) (*entity.CustomerSummary, error)
}
