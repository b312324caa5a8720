package dto

import "github.com/shopspring/decimal"

// AdminDashboardDTO respuesta de GET /api/dashboard/admin.
type AdminDashboardDTO struct {
	TotalUsers     int             `json:"total_users"`
	TotalCustomers int             `json:"total_customers"`
	TotalVendors   int             `json:"total_vendors"`
	PendingVendors int             `json:"pending_vendors"`
	TotalProducts  int             `json:"total_products"`
	TotalOrders    int             `json:"total_orders"`
	Revenue        decimal.Decimal `json:"revenue"` // pedidos pagados
	OrdersByStatus map[string]int  `json:"orders_by_status"`
	RecentOrders   []OrderResponse `json:"recent_orders"`
}

// VendorDashboardDTO respuesta de GET /api/dashboard/vendor.
type VendorDashboardDTO struct {
	VendorID       string            `json:"vendor_id"`
	ShopName       string            `json:"shop_name"`
	TotalProducts  int               `json:"total_products"`
	LowStock       []ProductResponse `json:"low_stock"`
	TotalOrders    int               `json:"total_orders"`
	OrdersByStatus map[string]int    `json:"orders_by_status"`
	Revenue        decimal.Decimal   `json:"revenue"`
	TopProducts    []TopProductDTO   `json:"top_products"`
	RecentOrders   []OrderResponse   `json:"recent_orders"`
}

// CustomerDashboardDTO respuesta de GET /api/dashboard/customer.
type CustomerDashboardDTO struct {
	TotalOrders    int             `json:"total_orders"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	OrdersByStatus map[string]int  `json:"orders_by_status"`
	RecentOrders   []OrderResponse `json:"recent_orders"`
}

// TopProductDTO producto más vendido de la tienda.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
