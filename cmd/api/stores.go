package main

import (
	"context"

	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/internal/infrastructure/memory"
	"github.com/jhoicas/supermall-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/supermall-api/internal/infrastructure/redis"
	"github.com/jhoicas/supermall-api/pkg/config"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

// stores repositorios de la API, respaldados por PostgreSQL/Redis o por el almacén en memoria.
type stores struct {
	users      repository.UserRepository
	vendors    repository.VendorRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	orders     repository.OrderRepository
	analytics  repository.AnalyticsRepository
	tx         orders.TxRunner
	carts      repository.CartStore
	events     ports.IdempotencyStore
	closers    []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores conecta PostgreSQL y Redis. Fuera de producción, si alguno no responde se usa
// el almacén en memoria con datos de prueba.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	s := &stores{}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	switch {
	case err == nil:
		s.closers = append(s.closers, pool.Close)
		s.users = postgres.NewUserRepository(pool)
		s.vendors = postgres.NewVendorRepository(pool)
		s.categories = postgres.NewCategoryRepository(pool)
		s.products = postgres.NewProductRepository(pool)
		s.movements = postgres.NewStockMovementRepository(pool)
		s.orders = postgres.NewOrderRepository(pool)
		s.analytics = postgres.NewAnalyticsRepository(pool)
		s.tx = postgres.NewTxRunner(pool)
		log.Info().Msg("PostgreSQL conectado")
	case cfg.App.IsProduction():
		return nil, err
	default:
		log.Warn().Err(err).Msg("PostgreSQL no disponible; usando datos de prueba en memoria")
		mem := memory.NewStore()
		if err := memory.Seed(mem); err != nil {
			return nil, err
		}
		s.users = memory.NewUserRepository(mem)
		s.vendors = memory.NewVendorRepository(mem)
		s.categories = memory.NewCategoryRepository(mem)
		s.products = memory.NewProductRepository(mem)
		s.movements = memory.NewStockMovementRepository(mem)
		s.orders = memory.NewOrderRepository(mem)
		s.analytics = memory.NewAnalyticsRepository(mem)
		s.tx = memory.NewTxRunner(mem)
		log.Info().
			Str("admin", memory.SeedAdminEmail).
			Str("vendor", memory.SeedVendorEmail).
			Str("customer", memory.SeedCustomerEmail).
			Str("password", memory.SeedPassword).
			Msg("usuarios de prueba")
	}

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	switch {
	case err == nil:
		s.closers = append(s.closers, func() { _ = rdb.Close() })
		s.carts = infraredis.NewCartStore(rdb, infraredis.CartTTL)
		s.events = infraredis.NewIdempotencyStore(rdb, infraredis.EventTTL)
		log.Info().Msg("Redis conectado")
	case cfg.App.IsProduction():
		s.Close()
		return nil, err
	default:
		log.Warn().Err(err).Msg("Redis no disponible; carritos en memoria")
		s.carts = memory.NewCartStore()
		s.events = memory.NewIdempotencyStore()
	}
	return s, nil
}
