package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/member-service/internal/api/http"
	"github.com/spec-kit/member-service/internal/api/http/handlers"
	"github.com/spec-kit/member-service/internal/auth"
	"github.com/spec-kit/member-service/internal/config"
	"github.com/spec-kit/member-service/internal/events"
	"github.com/spec-kit/member-service/internal/observability"
	"github.com/spec-kit/member-service/internal/persistence"
	"github.com/spec-kit/member-service/internal/repository"
	"github.com/spec-kit/member-service/internal/service"
	"github.com/spec-kit/member-service/internal/worker"
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

	var memberRepo repository.MemberRepository
	if pool := pg.PoolHandle(); pool != nil {
		memberRepo = repository.NewMemberRepository(pool)
	} else {
		logger.Warn("using in-memory member repository; data will not survive restarts")
		memberRepo = repository.NewMemoryMemberRepository()
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	memberService := service.NewMemberService(*cfg, memberRepo, dispatcher)
	authMiddleware := auth.NewAuthMiddleware(memberService.TokenManager(), logger)
	policy := auth.NewEvaluator()

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(memberService)
	membersHandler := handlers.NewMembersHandler(memberService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Members:        membersHandler,
		AuthMiddleware: authMiddleware,
		Policy:         policy,
		Ownership:      memberService.IsOwner,
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
