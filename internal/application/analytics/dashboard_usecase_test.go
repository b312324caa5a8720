package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/application/analytics"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/infrastructure/memory"
)

const (
	lakshmiShop = "2d3e4f5a-0000-4000-8000-000000000001"
	ravi        = "0b8f5c1e-1c7a-4d55-9c55-0a0000000004"
)

func seeded(t *testing.T) *analytics.DashboardUseCase {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, memory.Seed(s))
	return analytics.NewDashboardUseCase(
		memory.NewAnalyticsRepository(s),
		memory.NewUserRepository(s),
		memory.NewVendorRepository(s),
		memory.NewProductRepository(s),
		memory.NewOrderRepository(s),
		5,
	)
}

func TestAdminDashboard(t *testing.T) {
	d, err := seeded(t).Admin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, d.TotalUsers)
	assert.Equal(t, 1, d.TotalCustomers)
	assert.Equal(t, 2, d.TotalVendors)
	assert.Equal(t, 1, d.PendingVendors)
	assert.Equal(t, 4, d.TotalProducts)
	assert.Equal(t, 1, d.TotalOrders)
	assert.Equal(t, 1, d.OrdersByStatus[entity.OrderStatusDelivered])
	assert.True(t, d.Revenue.Equal(decimal.RequireFromString("650")), d.Revenue.String())
	require.Len(t, d.RecentOrders, 1)
}

func TestVendorDashboard(t *testing.T) {
	d, err := seeded(t).Vendor(context.Background(), lakshmiShop)
	require.NoError(t, err)

	assert.Equal(t, "Lakshmi Crafts", d.ShopName)
	assert.Equal(t, 3, d.TotalProducts)
	require.Len(t, d.LowStock, 1)
	assert.Equal(t, "Bamboo Basket", d.LowStock[0].Name)
	require.Len(t, d.TopProducts, 1)
	assert.Equal(t, 1, d.TopProducts[0].QuantitySold)
	assert.True(t, d.Revenue.Equal(decimal.RequireFromString("650")))
}

func TestVendorDashboard_SinTienda(t *testing.T) {
	_, err := seeded(t).Vendor(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrVendorNotApproved))
}

func TestCustomerDashboard(t *testing.T) {
	uc := seeded(t)
	d, err := uc.Customer(context.Background(), ravi)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalOrders)
	assert.True(t, d.TotalSpent.Equal(decimal.RequireFromString("650")))

	empty, err := uc.Customer(context.Background(), "nadie")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalOrders)
	assert.Empty(t, empty.RecentOrders)
	assert.True(t, empty.TotalSpent.IsZero())
}
