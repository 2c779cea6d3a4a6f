package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/eventkampus/api/internal/api/http"
	"github.com/eventkampus/api/internal/api/http/handlers"
	"github.com/eventkampus/api/internal/auth"
	"github.com/eventkampus/api/internal/config"
	"github.com/eventkampus/api/internal/events"
	"github.com/eventkampus/api/internal/gateway"
	"github.com/eventkampus/api/internal/observability"
	"github.com/eventkampus/api/internal/persistence"
	"github.com/eventkampus/api/internal/repository"
	"github.com/eventkampus/api/internal/service"
	"github.com/eventkampus/api/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketTypeRepo := repository.NewTicketTypeRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	paymentGateway := gateway.NewClient(cfg.Payment)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:        eventRepo,
		TicketTypeRepo:   ticketTypeRepo,
		RegistrationRepo: registrationRepo,
		Gateway:          paymentGateway,
		Dispatcher:       dispatcher,
	})
	paymentService := service.NewPaymentService(registrationRepo, cfg.Payment.ServerKey, logger, dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Events:         handlers.NewEventsHandler(eventService),
		Organization:   handlers.NewOrganizationHandler(eventService),
		Attendee:       handlers.NewAttendeeHandler(eventService),
		Payment:        handlers.NewPaymentHandler(paymentService, logger),
		AuthMiddleware: authMiddleware,
		RateLimiter:    httptransport.RateLimiter(redis, cfg.RateLimit, logger),
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
