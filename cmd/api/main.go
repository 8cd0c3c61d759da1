package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/catalog"
	"github.com/jhoicas/taller-api/internal/application/directory"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/excel"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-api/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/taller-api/internal/interfaces/http"
	"github.com/jhoicas/taller-api/internal/scheduler"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
)

type txRunner interface {
	inventory.TxRunner
	serviceorder.TxRunner
}

// repos agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type repos struct {
	tx        txRunner
	parts     repository.PartRepository
	movements repository.StockMovementRepository
	orders    repository.ServiceOrderRepository
	clients   repository.ClientRepository
	vehicles  repository.VehicleRepository
	users     repository.UserRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	r, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	// Borradores: Redis si hay REDIS_URL; si no, en memoria con purga periódica.
	var drafts serviceorder.DraftStore
	var purger scheduler.DraftPurger
	if cfg.Redis.URL != "" {
		rdb, err := redisstore.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		drafts = redisstore.NewDraftStore(rdb, cfg.Drafts.TTL)
	} else {
		mem := memory.NewDraftStore(cfg.Drafts.TTL)
		drafts, purger = mem, mem
	}

	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(r.tx, r.parts)
	ledgerUC := inventory.NewLedgerUseCase(r.tx, r.parts, r.movements)
	exportUC := inventory.NewExportUseCase(ledgerUC, excel.NewExporter())
	commitUC := serviceorder.NewCommitUseCase(r.tx, r.clients, r.vehicles, log.Component("commit"))
	queryUC := serviceorder.NewQueryUseCase(r.orders, r.clients, r.vehicles)
	draftUC := serviceorder.NewDraftUseCase(drafts, commitUC, queryUC)
	pdfUC := serviceorder.NewPDFUseCase(queryUC, r.clients, r.vehicles, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	directoryUC := directory.NewUseCase(r.clients, r.vehicles)

	sched := scheduler.New(ledgerUC, purger, log.Component("scheduler"))
	if cfg.Scheduler.ReconcileCron != "" {
		if err := sched.Start(cfg.Scheduler.ReconcileCron); err != nil {
			log.Fatal().Err(err).Msg("iniciar scheduler")
		}
		defer sched.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Taller API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		LedgerUC:    ledgerUC,
		ExportUC:    exportUC,
		DraftUC:     draftUC,
		OrderQuery:  queryUC,
		OrderPDF:    pdfUC,
		DirectoryUC: directoryUC,
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

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repos{
			tx: s, parts: s.Parts(), movements: s.Movements(), orders: s.Orders(),
			clients: s.Clients(), vehicles: s.Vehicles(), users: s.Users(),
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		pool.Close()
		return nil, err
	}
	return &repos{
		tx:        postgres.NewTxRunner(pool),
		parts:     postgres.NewPartRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		orders:    postgres.NewServiceOrderRepository(pool),
		clients:   postgres.NewClientRepository(pool),
		vehicles:  postgres.NewVehicleRepository(pool),
		users:     postgres.NewUserRepository(pool),
		close:     pool.Close,
	}, nil
}
