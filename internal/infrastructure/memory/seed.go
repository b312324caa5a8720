package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/order"
)

// Credenciales de los usuarios de prueba (solo modo desarrollo sin base de datos).
const (
	SeedPassword      = "supermall123"
	SeedAdminEmail    = "admin@supermall.local"
	SeedVendorEmail   = "lakshmi@supermall.local"
	SeedCustomerEmail = "ravi@supermall.local"
)

// Dataset datos de prueba listos para persistir.
type Dataset struct {
	Users      []*entity.User
	Categories []*entity.Category
	Vendors    []*entity.Vendor
	Products   []*entity.Product
	Orders     []*entity.Order
}

// SeedData arma los datos de prueba: un admin, dos vendedores (uno aprobado y uno pendiente),
// un cliente, categorías, productos y un pedido entregado.
func SeedData() (*Dataset, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash: %w", err)
	}
	now := time.Now().UTC()
	day := 24 * time.Hour

	users := []*entity.User{
		{ID: "0b8f5c1e-1c7a-4d55-9c55-0a0000000001", Email: SeedAdminEmail, Name: "Admin SuperMall", Role: entity.RoleAdmin},
		{ID: "0b8f5c1e-1c7a-4d55-9c55-0a0000000002", Email: SeedVendorEmail, Name: "Lakshmi Devi", Phone: "+91 98450 11223", Role: entity.RoleVendor},
		{ID: "0b8f5c1e-1c7a-4d55-9c55-0a0000000003", Email: "gopal@supermall.local", Name: "Gopal Rao", Phone: "+91 99000 44551", Role: entity.RoleVendor},
		{ID: "0b8f5c1e-1c7a-4d55-9c55-0a0000000004", Email: SeedCustomerEmail, Name: "Ravi Kumar", Phone: "+91 90080 77889",
			Address: "12 MG Road, Mysuru, Karnataka 570001", Role: entity.RoleCustomer},
	}
	for i, u := range users {
		u.PasswordHash = string(hash)
		u.Status = entity.UserStatusActive
		u.CreatedAt = now.Add(-time.Duration(30-i) * day)
		u.UpdatedAt = u.CreatedAt
	}

	categories := []*entity.Category{
		{ID: "1c2d3e4f-0000-4000-8000-000000000001", Name: "Handicrafts", Slug: "handicrafts", Description: "Artesanía hecha a mano"},
		{ID: "1c2d3e4f-0000-4000-8000-000000000002", Name: "Organic Food", Slug: "organic-food", Description: "Alimentos orgánicos de granja"},
		{ID: "1c2d3e4f-0000-4000-8000-000000000003", Name: "Textiles", Slug: "textiles", Description: "Telares y tejidos"},
	}
	for _, c := range categories {
		c.Status = entity.CategoryStatusActive
		c.CreatedAt = now.Add(-60 * day)
		c.UpdatedAt = c.CreatedAt
	}

	vendors := []*entity.Vendor{
		{ID: "2d3e4f5a-0000-4000-8000-000000000001", OwnerID: users[1].ID, ShopName: "Lakshmi Crafts", Slug: "lakshmi-crafts",
			Description: "Cestas y cerámica de Channapatna", Village: "Channapatna", District: "Ramanagara", State: "Karnataka",
			Phone: users[1].Phone, Email: users[1].Email, Status: entity.VendorStatusApproved},
		{ID: "2d3e4f5a-0000-4000-8000-000000000002", OwnerID: users[2].ID, ShopName: "Gopal Organic Farm", Slug: "gopal-organic-farm",
			Description: "Miel, jaggery y especias", Village: "Sakleshpur", District: "Hassan", State: "Karnataka",
			Phone: users[2].Phone, Email: users[2].Email, Status: entity.VendorStatusPending},
	}
	for _, v := range vendors {
		v.CreatedAt = now.Add(-20 * day)
		v.UpdatedAt = v.CreatedAt
	}

	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	products := []*entity.Product{
		{ID: "3e4f5a6b-0000-4000-8000-000000000001", VendorID: vendors[0].ID, CategoryID: categories[0].ID,
			Name: "Channapatna Wooden Toy Set", Slug: "channapatna-wooden-toy-set", Price: price("650"), Stock: 25, Unit: "set",
			Images: []string{"https://res.cloudinary.com/supermall/image/upload/v1/products/toy-set.jpg"}},
		{ID: "3e4f5a6b-0000-4000-8000-000000000002", VendorID: vendors[0].ID, CategoryID: categories[0].ID,
			Name: "Bamboo Basket", Slug: "bamboo-basket", Price: price("320"), Stock: 3, Unit: "pieza",
			Images: []string{"https://res.cloudinary.com/supermall/image/upload/v1/products/basket.jpg"}},
		{ID: "3e4f5a6b-0000-4000-8000-000000000003", VendorID: vendors[0].ID, CategoryID: categories[2].ID,
			Name: "Handloom Cotton Saree", Slug: "handloom-cotton-saree", Price: price("1800"), Stock: 8, Unit: "pieza"},
		{ID: "3e4f5a6b-0000-4000-8000-000000000004", VendorID: vendors[1].ID, CategoryID: categories[1].ID,
			Name: "Wild Forest Honey", Slug: "wild-forest-honey", Price: price("450"), Stock: 40, Unit: "kg"},
	}
	cmp := price("799")
	products[0].CompareAtPrice = &cmp
	for i, p := range products {
		p.Status = entity.ProductStatusActive
		p.CreatedAt = now.Add(-time.Duration(15-i) * day)
		p.UpdatedAt = p.CreatedAt
	}

	placed := now.Add(-5 * day)
	sample := &entity.Order{
		ID:          "4f5a6b7c-0000-4000-8000-000000000001",
		OrderNumber: order.NewNumber(placed),
		CustomerID:  users[3].ID,
		VendorID:    vendors[0].ID,
		Items: []entity.OrderItem{{
			ID: "5a6b7c8d-0000-4000-8000-000000000001", OrderID: "4f5a6b7c-0000-4000-8000-000000000001",
			ProductID: products[0].ID, ProductName: products[0].Name, UnitPrice: products[0].Price,
			Quantity: 1, Subtotal: products[0].Price,
		}},
		Subtotal:        products[0].Price,
		ShippingFee:     decimal.Zero,
		Total:           products[0].Price,
		Status:          entity.OrderStatusDelivered,
		PaymentStatus:   entity.PaymentStatusPaid,
		PaymentMethod:   entity.PaymentMethodCOD,
		ShippingAddress: users[3].Address,
		CreatedAt:       placed,
		UpdatedAt:       placed.Add(3 * day),
	}

	return &Dataset{
		Users:      users,
		Categories: categories,
		Vendors:    vendors,
		Products:   products,
		Orders:     []*entity.Order{sample},
	}, nil
}

// Seed carga los datos de prueba en el almacén.
func Seed(s *Store) error {
	d, err := SeedData()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range d.Users {
		s.users[u.ID] = u
	}
	for _, c := range d.Categories {
		s.categories[c.ID] = c
	}
	for _, v := range d.Vendors {
		s.vendors[v.ID] = v
	}
	for _, p := range d.Products {
		s.products[p.ID] = p
	}
	for _, o := range d.Orders {
		s.orders[o.ID] = o
	}
	return nil
}
