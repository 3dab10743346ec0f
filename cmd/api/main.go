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
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/application/order"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/mail"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/storetrack-api/internal/infrastructure/pdf"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/storetrack-api/internal/interfaces/http"
	"github.com/jhoicas/storetrack-api/pkg/config"
	"github.com/jhoicas/storetrack-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// backend agrupa los adaptadores de almacenamiento del driver elegido.
type backend struct {
	txRunner interface {
		inventory.TxRunner
		order.TxRunner
		usecase.CategoryTxRunner
	}
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	items      repository.OrderItemRepository
	history    repository.StockHistoryRepository
	reports    repository.ReportRepository
	db         httpRouter.Pinger
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	productUC := usecase.NewProductUseCase(be.txRunner, be.products, be.categories, cfg.Inventory.LowStockThreshold)
	categoryUC := usecase.NewCategoryUseCase(be.txRunner, be.categories)
	orderUC := order.NewOrderUseCase(be.txRunner, be.orders, be.items)
	stockHistoryUC := inventory.NewRegisterMovementUseCase(be.txRunner, be.history)
	reportUC := usecase.NewReportUseCase(be.reports, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	// Aviso diario de bajo stock por correo
	var sched *scheduler.Scheduler
	if cfg.Alert.Enabled() {
		sched, err = scheduler.New(cfg.Alert.Timezone, log)
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
		alertUC := inventory.NewLowStockAlertUseCase(
			be.products, mail.NewGomailSender(cfg.Alert), cfg.Alert.EmailReceiver,
			cfg.Inventory.LowStockThreshold, log,
		)
		if err := sched.Register("low_stock_alert", cfg.Alert.Cron, alertUC.Run); err != nil {
			log.Fatal().Err(err).Msg("agendar aviso de bajo stock")
		}
		sched.Start()
	} else {
		log.Warn().Msg("ALERT_EMAIL_* sin configurar: aviso de bajo stock deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "StoreTrack API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		CategoryUC:     categoryUC,
		OrderUC:        orderUC,
		StockHistoryUC: stockHistoryUC,
		ReportUC:       reportUC,
		DB:             be.db,
		JWTSecret:      cfg.JWT.Secret,
		Logger:         log.Component("http"),
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

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

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg config.DBConfig) (*backend, error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &backend{
			txRunner:   store,
			products:   store.Products(),
			categories: store.Categories(),
			orders:     store.Orders(),
			items:      store.OrderItems(),
			history:    store.StockHistory(),
			reports:    store.Reports(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		txRunner:   postgres.NewTxRunner(pool),
		products:   postgres.NewProductRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		orders:     postgres.NewOrderRepository(pool),
		items:      postgres.NewOrderItemRepository(pool),
		history:    postgres.NewStockHistoryRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		db:         pool,
		close:      pool.Close,
	}, nil
}
