package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/supermall-api/internal/application/analytics"
	"github.com/jhoicas/supermall-api/internal/application/auth"
	"github.com/jhoicas/supermall-api/internal/application/cart"
	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/application/payments"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/application/usecase"
	infraai "github.com/jhoicas/supermall-api/internal/infrastructure/ai"
	"github.com/jhoicas/supermall-api/internal/infrastructure/mail"
	"github.com/jhoicas/supermall-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/supermall-api/internal/infrastructure/pdf"
	infrastripe "github.com/jhoicas/supermall-api/internal/infrastructure/stripe"
	httpRouter "github.com/jhoicas/supermall-api/internal/interfaces/http"
	"github.com/jhoicas/supermall-api/pkg/config"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a almacenamiento")
	}
	defer st.Close()

	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		notifier = mail.NewNotifier(cfg.SMTP, log)
	} else {
		notifier = mail.NewLogNotifier(log)
	}

	// Sin STRIPE_SECRET_KEY los endpoints de pago responden 503.
	var gateway ports.PaymentGateway
	if cfg.Stripe.Enabled() {
		gw, err := infrastripe.NewGateway(cfg.Stripe, nil, log)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración de Stripe")
		}
		gateway = gw
	} else {
		log.Warn().Msg("Stripe sin configurar: pagos con tarjeta deshabilitados")
	}

	llm := infraai.NewFromConfig(cfg.AI)
	if llm == nil {
		log.Warn().Msg("sin credenciales de IA: asistente de publicación deshabilitado")
	}

	pricing, err := orders.NewPricing(cfg.Shop.ShippingFee, cfg.Shop.FreeShippingThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de envío")
	}

	createOrderUC := orders.NewCreateOrderUseCase(st.tx, st.products, st.vendors, st.users, notifier, pricing, log).
		WithBackoff(time.Duration(cfg.Shop.OrderRetryBackoffMS) * time.Millisecond)
	vendorUC := usecase.NewVendorUseCase(st.vendors, st.users, notifier, log)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	reg := metrics.NewRegistry()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// slugs en escrituras índicas llegan con percent-encoding
		UnescapePath: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(splitOrigins(cfg.HTTP.CORSOrigins), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
	}))
	app.Use(httpRouter.RequestLogger(log, reg))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SuperMall API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))

	// Datos públicos que necesita el frontend (subida de imágenes y Stripe.js).
	app.Get("/api/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cloudinary_cloud_name":  cfg.Cloudinary.CloudName,
			"stripe_publishable_key": cfg.Stripe.PublishableKey,
			"currency":               cfg.Stripe.Currency,
			"payments_enabled":       gateway != nil,
			"ai_enabled":             llm != nil,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  usecase.NewCategoryUseCase(st.categories),
		VendorUC:    vendorUC,
		ProductUC:   usecase.NewProductUseCase(st.products, st.vendors, st.categories, st.movements, st.tx),
		CustomerUC:  usecase.NewCustomerUseCase(st.analytics, st.users, log),
		AIUC:        usecase.NewAIUseCase(llm, st.categories),
		CartUC:      cart.NewCartUseCase(st.carts, st.products, st.vendors, createOrderUC, log),
		CreateOrder: createOrderUC,
		OrderUC:     orders.NewOrderUseCase(st.orders, st.users, st.tx, notifier, log),
		ReceiptUC:   orders.NewReceiptUseCase(st.orders, st.vendors, st.users, infrapdf.NewReceiptGenerator()),
		PaymentUC:   payments.NewPaymentUseCase(gateway, st.events, st.orders, st.users, cfg.Stripe.Currency, log),
		DashboardUC: analytics.NewDashboardUseCase(st.analytics, st.users, st.vendors, st.products, st.orders, cfg.Shop.LowStockThreshold),
		Metrics:     reg,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
