// Package analytics contiene los paneles de resumen por rol: admin, tienda y cliente.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/application/usecase"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

const (
	recentOrders = 5 // pedidos en el widget "últimos pedidos"
	topProducts  = 5
	lowStockMax  = 10
)

// DashboardUseCase arma los paneles a partir de consultas read-only.
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	userRepo          repository.UserRepository
	vendorRepo        repository.VendorRepository
	productRepo       repository.ProductRepository
	orderRepo         repository.OrderRepository
	lowStockThreshold int
}

// NewDashboardUseCase construye el caso de uso. lowStockThreshold es el umbral de "stock bajo".
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	userRepo repository.UserRepository,
	vendorRepo repository.VendorRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	lowStockThreshold int,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo:     analyticsRepo,
		userRepo:          userRepo,
		vendorRepo:        vendorRepo,
		productRepo:       productRepo,
		orderRepo:         orderRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

type countResult struct {
	n   int
	err error
}

type statusResult struct {
	byStatus map[string]int
	err      error
}

type revenueResult struct {
	amount decimal.Decimal
	err    error
}

type ordersResult struct {
	list []*entity.Order
	err  error
}

// Admin resumen de toda la plataforma. Las consultas corren en paralelo.
func (uc *DashboardUseCase) Admin(ctx context.Context) (*dto.AdminDashboardDTO, error) {
	customersCh := make(chan countResult, 1)
	vendorsCh := make(chan countResult, 1)
	pendingCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	statusCh := make(chan statusResult, 1)
	revenueCh := make(chan revenueResult, 1)
	recentCh := make(chan ordersResult, 1)

	go func() {
		n, err := uc.userRepo.CountByRole(ctx, entity.RoleCustomer)
		customersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.vendorRepo.CountByStatus(ctx, "")
		vendorsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.vendorRepo.CountByStatus(ctx, entity.VendorStatusPending)
		pendingCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.CountOrdersByStatus(ctx, "", "")
		statusCh <- statusResult{m, err}
	}()
	go func() {
		amount, err := uc.analyticsRepo.PaidRevenue(ctx, "", "")
		revenueCh <- revenueResult{amount, err}
	}()
	go func() {
		list, _, err := uc.orderRepo.List(ctx, entity.OrderFilter{Limit: recentOrders})
		recentCh <- ordersResult{list, err}
	}()

	customers, vendors, pending, products := <-customersCh, <-vendorsCh, <-pendingCh, <-productsCh
	status, revenue, recent := <-statusCh, <-revenueCh, <-recentCh

	for _, r := range []struct {
		what string
		err  error
	}{
		{"clientes", customers.err},
		{"tiendas", vendors.err},
		{"tiendas pendientes", pending.err},
		{"productos", products.err},
		{"pedidos por estado", status.err},
		{"ingresos", revenue.err},
		{"pedidos recientes", recent.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard admin: %s: %w", r.what, r.err)
		}
	}

	totalUsers, err := uc.countUsers(ctx, customers.n)
	if err != nil {
		return nil, err
	}
	return &dto.AdminDashboardDTO{
		TotalUsers:     totalUsers,
		TotalCustomers: customers.n,
		TotalVendors:   vendors.n,
		PendingVendors: pending.n,
		TotalProducts:  products.n,
		TotalOrders:    sum(status.byStatus),
		Revenue:        revenue.amount.Round(2),
		OrdersByStatus: status.byStatus,
		RecentOrders:   orders.ToOrderResponses(recent.list),
	}, nil
}

// countUsers suma clientes, vendedores y admins.
func (uc *DashboardUseCase) countUsers(ctx context.Context, customers int) (int, error) {
	total := customers
	for _, role := range []string{entity.RoleVendor, entity.RoleAdmin} {
		n, err := uc.userRepo.CountByRole(ctx, role)
		if err != nil {
			return 0, fmt.Errorf("dashboard admin: usuarios %s: %w", role, err)
		}
		total += n
	}
	return total, nil
}

// Vendor panel de la tienda: ventas, más vendidos y alertas de stock bajo.
func (uc *DashboardUseCase) Vendor(ctx context.Context, vendorID string) (*dto.VendorDashboardDTO, error) {
	if vendorID == "" {
		return nil, domain.ErrVendorNotApproved
	}
	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}

	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type topResult struct {
		list []repository.ProductSales
		err  error
	}

	countCh := make(chan countResult, 1)
	lowCh := make(chan productsResult, 1)
	statusCh := make(chan statusResult, 1)
	revenueCh := make(chan revenueResult, 1)
	topCh := make(chan topResult, 1)
	recentCh := make(chan ordersResult, 1)

	go func() {
		n, err := uc.productRepo.CountByVendor(ctx, vendorID)
		countCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.productRepo.ListLowStock(ctx, vendorID, uc.lowStockThreshold, lowStockMax)
		lowCh <- productsResult{list, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.CountOrdersByStatus(ctx, vendorID, "")
		statusCh <- statusResult{m, err}
	}()
	go func() {
		amount, err := uc.analyticsRepo.PaidRevenue(ctx, vendorID, "")
		revenueCh <- revenueResult{amount, err}
	}()
	go func() {
		list, err := uc.analyticsRepo.TopProducts(ctx, vendorID, topProducts)
		topCh <- topResult{list, err}
	}()
	go func() {
		list, _, err := uc.orderRepo.List(ctx, entity.OrderFilter{VendorID: vendorID, Limit: recentOrders})
		recentCh <- ordersResult{list, err}
	}()

	count, low, status := <-countCh, <-lowCh, <-statusCh
	revenue, top, recent := <-revenueCh, <-topCh, <-recentCh

	if count.err != nil {
		return nil, fmt.Errorf("dashboard tienda: productos: %w", count.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard tienda: stock bajo: %w", low.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard tienda: pedidos por estado: %w", status.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard tienda: ingresos: %w", revenue.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard tienda: más vendidos: %w", top.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard tienda: pedidos recientes: %w", recent.err)
	}

	lowStock := make([]dto.ProductResponse, 0, len(low.list))
	for _, p := range low.list {
		lowStock = append(lowStock, *usecase.ToProductResponse(p))
	}
	best := make([]dto.TopProductDTO, 0, len(top.list))
	for _, ps := range top.list {
		best = append(best, dto.TopProductDTO{
			ProductID:    ps.ProductID,
			ProductName:  ps.ProductName,
			QuantitySold: ps.QuantitySold,
			Revenue:      ps.Revenue.Round(2),
		})
	}
	return &dto.VendorDashboardDTO{
		VendorID:       vendor.ID,
		ShopName:       vendor.ShopName,
		TotalProducts:  count.n,
		LowStock:       lowStock,
		TotalOrders:    sum(status.byStatus),
		OrdersByStatus: status.byStatus,
		Revenue:        revenue.amount.Round(2),
		TopProducts:    best,
		RecentOrders:   orders.ToOrderResponses(recent.list),
	}, nil
}

// Customer resumen de compras del cliente.
func (uc *DashboardUseCase) Customer(ctx context.Context, customerID string) (*dto.CustomerDashboardDTO, error) {
	statusCh := make(chan statusResult, 1)
	spentCh := make(chan revenueResult, 1)
	recentCh := make(chan ordersResult, 1)

	go func() {
		m, err := uc.analyticsRepo.CountOrdersByStatus(ctx, "", customerID)
		statusCh <- statusResult{m, err}
	}()
	go func() {
		amount, err := uc.analyticsRepo.PaidRevenue(ctx, "", customerID)
		spentCh <- revenueResult{amount, err}
	}()
	go func() {
		list, _, err := uc.orderRepo.List(ctx, entity.OrderFilter{CustomerID: customerID, Limit: recentOrders})
		recentCh <- ordersResult{list, err}
	}()

	status, spent, recent := <-statusCh, <-spentCh, <-recentCh
	if status.err != nil {
		return nil, fmt.Errorf("dashboard cliente: pedidos por estado: %w", status.err)
	}
	if spent.err != nil {
		return nil, fmt.Errorf("dashboard cliente: gasto: %w", spent.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard cliente: pedidos recientes: %w", recent.err)
	}
	return &dto.CustomerDashboardDTO{
		TotalOrders:    sum(status.byStatus),
		TotalSpent:     spent.amount.Round(2),
		OrdersByStatus: status.byStatus,
		RecentOrders:   orders.ToOrderResponses(recent.list),
	}, nil
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
