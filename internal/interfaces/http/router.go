package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermall-api/internal/application/analytics"
	"github.com/jhoicas/supermall-api/internal/application/auth"
	"github.com/jhoicas/supermall-api/internal/application/cart"
	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/application/payments"
	"github.com/jhoicas/supermall-api/internal/application/usecase"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// Metrics contadores de negocio que alimentan los handlers. Puede ser nil.
type Metrics interface {
	OrderMetrics
	WebhookMetrics
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	VendorUC    *usecase.VendorUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	AIUC        *usecase.AIUseCase
	CartUC      *cart.CartUseCase
	CreateOrder *orders.CreateOrderUseCase
	OrderUC     *orders.OrderUseCase
	ReceiptUC   *orders.ReceiptUseCase
	PaymentUC   *payments.PaymentUseCase
	DashboardUC *analytics.DashboardUseCase
	Metrics     Metrics
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	var orderMetrics OrderMetrics
	var webhookMetrics WebhookMetrics
	if deps.Metrics != nil {
		orderMetrics, webhookMetrics = deps.Metrics, deps.Metrics
	}

	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	optional := OptionalAuth(deps.JWTSecret)
	shop := VendorContext(deps.VendorUC)

	admin := RequireRole(entity.RoleAdmin)
	vendorOrAdmin := RequireRole(entity.RoleVendor, entity.RoleAdmin)
	customer := RequireRole(entity.RoleCustomer)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)
	authGroup.Put("/me", authn, authHandler.UpdateMe)

	// Categorías: lectura pública, escritura admin
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories")
	categories.Get("/", optional, categoryHandler.List)
	categories.Get("/:id", categoryHandler.Get)
	categories.Post("/", authn, admin, categoryHandler.Create)
	categories.Put("/:id", authn, admin, categoryHandler.Update)
	categories.Delete("/:id", authn, admin, categoryHandler.Delete)

	// Tiendas
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors := api.Group("/vendors")
	vendors.Get("/", optional, vendorHandler.List)
	vendors.Get("/me", authn, RequireRole(entity.RoleVendor), vendorHandler.Mine)
	vendors.Get("/:id", optional, vendorHandler.Get)
	vendors.Post("/", authn, RequireRole(entity.RoleVendor), vendorHandler.Apply)
	vendors.Put("/:id", authn, vendorOrAdmin, vendorHandler.Update)
	vendors.Patch("/:id/status", authn, admin, vendorHandler.UpdateStatus)
	vendors.Delete("/:id", authn, admin, vendorHandler.Delete)

	// Productos: catálogo público; gestión para la tienda dueña o el admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/mine", authn, RequireRole(entity.RoleVendor), shop, productHandler.ListMine)
	products.Get("/:id", optional, shop, productHandler.Get)
	products.Post("/", authn, vendorOrAdmin, shop, productHandler.Create)
	products.Put("/:id", authn, vendorOrAdmin, shop, productHandler.Update)
	products.Delete("/:id", authn, vendorOrAdmin, shop, productHandler.Delete)
	products.Post("/:id/stock", authn, vendorOrAdmin, shop, productHandler.AdjustStock)
	products.Get("/:id/movements", authn, vendorOrAdmin, shop, productHandler.Movements)

	// Asistente IA
	aiHandler := NewAIHandler(deps.AIUC)
	api.Post("/ai/product-suggestion", authn, vendorOrAdmin, aiHandler.SuggestListing)

	// Carrito
	cartHandler := NewCartHandler(deps.CartUC, orderMetrics)
	cartGroup := api.Group("/cart", authn, customer)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:productId", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:productId", cartHandler.RemoveItem)
	cartGroup.Post("/items/:productId/save", cartHandler.SaveForLater)
	cartGroup.Post("/saved/:productId/move", cartHandler.MoveToCart)
	cartGroup.Post("/checkout", cartHandler.Checkout)

	// Pedidos
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderUC, deps.ReceiptUC, orderMetrics)
	paymentHandler := NewPaymentHandler(deps.PaymentUC, webhookMetrics)
	ordersGroup := api.Group("/orders", authn, shop)
	ordersGroup.Post("/", customer, orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/number/:number", orderHandler.GetByNumber)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Patch("/:id/status", vendorOrAdmin, orderHandler.UpdateStatus)
	ordersGroup.Post("/:id/cancel", customer, orderHandler.Cancel)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)
	ordersGroup.Post("/:id/refund", admin, paymentHandler.Refund)

	// Pagos. El webhook es público: lo autentica la firma de Stripe.
	paymentsGroup := api.Group("/payments")
	paymentsGroup.Post("/webhook", paymentHandler.Webhook)
	paymentsGroup.Post("/create-intent", authn, customer, paymentHandler.CreateIntent)
	paymentsGroup.Post("/confirm", authn, customer, paymentHandler.Confirm)

	// Clientes (admin)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", authn, admin)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Patch("/:id/status", customerHandler.UpdateStatus)

	// Paneles
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := api.Group("/dashboard", authn)
	dashboard.Get("/admin", admin, dashboardHandler.Admin)
	dashboard.Get("/vendor", RequireRole(entity.RoleVendor), shop, dashboardHandler.Vendor)
	dashboard.Get("/customer", customer, dashboardHandler.Customer)
}
