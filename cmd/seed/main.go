// seed carga en PostgreSQL los datos de prueba del modo desarrollo (admin, tiendas,
// productos y un pedido). Los registros que ya existen se omiten.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/infrastructure/memory"
	"github.com/jhoicas/supermall-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supermall-api/pkg/config"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	if cfg.App.IsProduction() {
		log.Fatal().Msg("seed no se ejecuta en producción")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	d, err := memory.SeedData()
	if err != nil {
		log.Fatal().Err(err).Msg("armar datos de prueba")
	}

	users := postgres.NewUserRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	vendors := postgres.NewVendorRepository(pool)
	products := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	var created, skipped int
	count := func(what, key string, err error) {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Debug().Str(what, key).Msg("ya existe")
		default:
			log.Fatal().Err(err).Str(what, key).Msg("seed")
		}
	}
	for _, u := range d.Users {
		count("user", u.Email, users.Create(ctx, u))
	}
	for _, c := range d.Categories {
		count("category", c.Slug, categories.Create(ctx, c))
	}
	for _, v := range d.Vendors {
		count("vendor", v.Slug, vendors.Create(ctx, v))
	}
	for _, p := range d.Products {
		count("product", p.Slug, products.Create(ctx, p))
	}
	for _, o := range d.Orders {
		count("order", o.OrderNumber, orderRepo.Create(ctx, o))
	}

	log.Info().Int("created", created).Int("skipped", skipped).
		Str("password", memory.SeedPassword).
		Msg("datos de prueba cargados")
}
