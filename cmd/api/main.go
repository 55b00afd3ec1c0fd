package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/night-assist/assist-service/internal/api/http"
	"github.com/night-assist/assist-service/internal/api/http/handlers"
	"github.com/night-assist/assist-service/internal/auth"
	"github.com/night-assist/assist-service/internal/config"
	"github.com/night-assist/assist-service/internal/events"
	"github.com/night-assist/assist-service/internal/notification"
	"github.com/night-assist/assist-service/internal/observability"
	"github.com/night-assist/assist-service/internal/persistence"
	"github.com/night-assist/assist-service/internal/repository"
	"github.com/night-assist/assist-service/internal/service"
	"github.com/night-assist/assist-service/internal/storage"
	"github.com/night-assist/assist-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr, logger); err != nil {
				logger.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	citizenRepo := repository.NewCitizenRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	timestampRepo := repository.NewTimestampRepository(pool)
	accidentRepo := repository.NewAccidentRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	deviceCache := repository.NewDeviceCache(redis.Client, 5*time.Minute)

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CitizenRepo: citizenRepo,
		AdminRepo:   adminRepo,
		Dispatcher:  dispatcher,
	})
	if pool != nil {
		if err := authService.EnsureDefaultAdmin(ctx, cfg.Bootstrap); err != nil {
			logger.Fatal("failed to seed default admin", zap.Error(err))
		}
	}

	fileStore, err := storage.NewFileStore(cfg.Upload)
	if err != nil {
		logger.Fatal("failed to init file store", zap.Error(err))
	}

	citizenService := service.NewCitizenService(citizenRepo, deviceCache, authService)
	adminService := service.NewAdminService(adminRepo, authService)
	timestampService := service.NewTimestampService(timestampRepo, citizenRepo, deviceCache, dispatcher)
	accidentService := service.NewAccidentService(accidentRepo, citizenRepo, deviceCache, dispatcher, metrics)
	productService := service.NewProductService(productRepo, fileStore)
	orderService := service.NewOrderService(orderRepo, productRepo)

	smsSender := notification.SenderFromConfig(cfg.SMS, logger)
	notificationService := service.NewNotificationService(dispatcher, smsSender, logger, metrics, cfg.SMS)
	worker.StartNotificationWorker(notificationService)

	guard := auth.NewGuard(authService.TokenManager())

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Upload.MaxSizeBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Citizens:   handlers.NewCitizensHandler(authService, citizenService),
		Admins:     handlers.NewAdminsHandler(authService, adminService),
		Timestamps: handlers.NewTimestampsHandler(timestampService),
		Accidents:  handlers.NewAccidentsHandler(accidentService),
		Products:   handlers.NewProductsHandler(productService),
		Orders:     handlers.NewOrdersHandler(orderService),
		Guard:      guard,
		UploadDir:  fileStore.Dir(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
