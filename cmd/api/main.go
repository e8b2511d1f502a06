package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/petshop-pro/internal/application/auth"
	"github.com/tu-usuario/petshop-pro/internal/application/catalog"
	"github.com/tu-usuario/petshop-pro/internal/application/checkout"
	"github.com/tu-usuario/petshop-pro/internal/application/schedule"
	"github.com/tu-usuario/petshop-pro/internal/application/settlement"
	"github.com/tu-usuario/petshop-pro/internal/application/stock"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
	infracache "github.com/tu-usuario/petshop-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/petshop-pro/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/petshop-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/petshop-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/petshop-pro/internal/interfaces/http"
	"github.com/tu-usuario/petshop-pro/pkg/config"
	"github.com/tu-usuario/petshop-pro/pkg/logger"
)

// backend agrupa los repos y runners del almacenamiento elegido.
type backend struct {
	txRunner interface {
		stock.TxRunner
		checkout.TxRunner
		settlement.TxRunner
	}
	owners       repository.OwnerRepository
	products     repository.ProductRepository
	categories   repository.CategoryRepository
	variants     repository.VariantRepository
	movements    repository.StockMovementRepository
	sales        repository.SaleRepository
	settlements  repository.SettlementRepository
	adjustments  repository.AdjustmentRepository
	appointments repository.AppointmentRepository
	customers    repository.CustomerRepository
	pets         repository.PetRepository
	users        repository.UserRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var be backend
	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		be = backend{
			txRunner:     postgres.NewTxRunner(pool),
			owners:       postgres.NewOwnerRepository(pool),
			products:     postgres.NewProductRepository(pool),
			categories:   postgres.NewCategoryRepository(pool),
			variants:     postgres.NewVariantRepository(pool),
			movements:    postgres.NewStockMovementRepository(pool),
			sales:        postgres.NewSaleRepository(pool),
			settlements:  postgres.NewSettlementRepository(pool),
			adjustments:  postgres.NewAdjustmentRepository(pool),
			appointments: postgres.NewAppointmentRepository(pool),
			customers:    postgres.NewCustomerRepository(pool),
			pets:         postgres.NewPetRepository(pool),
			users:        postgres.NewUserRepository(pool),
			close:        pool.Close,
		}
		log.Info().Msg("almacenamiento: PostgreSQL")
	} else {
		store := memory.NewSeeded()
		be = backend{
			txRunner:     store,
			owners:       store.Owners(),
			products:     store.Products(),
			categories:   store.Categories(),
			variants:     store.Variants(),
			movements:    store.Movements(),
			sales:        store.Sales(),
			settlements:  store.Settlements(),
			adjustments:  store.Adjustments(),
			appointments: store.Appointments(),
			customers:    store.Customers(),
			pets:         store.Pets(),
			users:        store.Users(),
			close:        func() {},
		}
		log.Warn().Msg("almacenamiento: memoria (sin DATABASE_URL ni DB_HOST; solo demo/desarrollo)")
	}
	defer be.close()

	// Cache de saldos: Redis si está configurado, si no noop.
	var balanceCache settlement.BalanceCache = settlement.NoopBalanceCache{}
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisBalanceCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		balanceCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de saldos: Redis")
	}

	receipts := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)

	ledgerUC := stock.NewLedgerUseCase(be.txRunner, be.variants, be.movements)
	checkoutUC := checkout.NewUseCase(
		be.txRunner, ledgerUC,
		be.variants, be.products, be.customers, be.appointments, be.sales,
		balanceCache,
	)
	settlementUC := settlement.NewUseCase(
		be.txRunner,
		be.owners, be.sales, be.adjustments, be.settlements, be.products,
		balanceCache, receipts,
	)
	scheduleUC := schedule.NewUseCase(be.appointments, be.pets, be.customers)
	ownerUC := catalog.NewOwnerUseCase(be.owners)
	productUC := catalog.NewProductUseCase(be.products, be.variants, be.owners, be.categories)
	customerUC := catalog.NewCustomerUseCase(be.customers, be.pets)
	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		OwnerUC:      ownerUC,
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		LedgerUC:     ledgerUC,
		CheckoutUC:   checkoutUC,
		SettlementUC: settlementUC,
		ScheduleUC:   scheduleUC,
		JWTSecret:    cfg.JWT.Secret,
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
