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

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/memory"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/metrics"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/panaderia-api/internal/interfaces/http"
	"github.com/jhoicas/panaderia-api/internal/interfaces/ws"
	"github.com/jhoicas/panaderia-api/pkg/config"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

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
		Str("store", cfg.Stock.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		tx    stock.TxRunner
		repos stock.TxRepos
	)
	switch cfg.Stock.Driver {
	case config.StoreDriverMemory:
		s := memory.NewStore()
		tx, repos = s, s.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		tx, repos = postgres.NewTxRunner(pool, cfg.Stock.LockTimeout), postgres.Repos(pool)
	}

	policy := rolePolicy(cfg.Roles)
	opts := []stock.Option{stock.WithLogger(log)}

	var m *metrics.Metrics
	onClients := func(int) {}
	if cfg.Metrics.Enabled {
		m = metrics.New("panaderia")
		opts = append(opts, stock.WithRecorder(m))
		onClients = func(n int) { m.WSClients.Set(float64(n)) }
	}

	hub := ws.NewHub(log, onClients)
	go hub.Run(ctx)
	opts = append(opts, stock.WithNotifier(hub))

	engine := stock.NewEngine(tx, repos, policy, opts...)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Panadería API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Stock.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:      engine,
		Policy:      policy,
		JWTSecret:   cfg.JWT.Secret,
		Hub:         hub,
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
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
	stop()

	log.Info().Msg("aplicación detenida")
}

func rolePolicy(r config.RolesConfig) stock.RolePolicy {
	return stock.NewRolePolicy(map[stock.Capability][]string{
		stock.CapAdjustInventory:     r.AdjustInventory,
		stock.CapRequestPurchase:     r.RequestPurchase,
		stock.CapApprovePurchase:     r.ApprovePurchase,
		stock.CapAutoApprovePurchase: r.AutoApprovePurchase,
		stock.CapProduce:             r.Produce,
		stock.CapRecordLoss:          r.RecordLoss,
		stock.CapRecordSale:          r.RecordSale,
		stock.CapCreateProduct:       r.CreateProduct,
		stock.CapViewAudit:           r.ViewAudit,
	})
}
