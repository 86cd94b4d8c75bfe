package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/forum-service/internal/api/http"
	"github.com/spec-kit/forum-service/internal/api/http/handlers"
	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/config"
	"github.com/spec-kit/forum-service/internal/events"
	"github.com/spec-kit/forum-service/internal/mail"
	"github.com/spec-kit/forum-service/internal/observability"
	"github.com/spec-kit/forum-service/internal/persistence"
	"github.com/spec-kit/forum-service/internal/realtime"
	"github.com/spec-kit/forum-service/internal/repository"
	"github.com/spec-kit/forum-service/internal/service"
	"github.com/spec-kit/forum-service/internal/worker"
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
	questionRepo := repository.NewQuestionRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	pushPublisher := realtime.NewRedisPublisher(redis.Client)
	mailPublisher := mail.NewAMQPPublisher(cfg.Mail, logger)

	userService := service.NewUserService(*cfg, userRepo)
	questionService := service.NewQuestionService(questionRepo, tagRepo, logger)
	answerService := service.NewAnswerService(answerRepo, questionRepo, dispatcher, logger)
	tagService := service.NewTagService(tagRepo)
	notificationService := service.NewNotificationService(notificationRepo, pushPublisher, metrics, logger)
	resetService := service.NewPasswordResetService(
		userRepo,
		userService.TokenManager(),
		mailPublisher,
		cfg.App.FrontendBaseURL,
		cfg.Auth.BcryptCost,
		logger,
	)

	worker.StartNotificationWorker(dispatcher, notificationService)

	gate := auth.NewGate(userService.TokenManager(), logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:         handlers.NewUsersHandler(userService),
		Questions:     handlers.NewQuestionsHandler(questionService),
		Answers:       handlers.NewAnswersHandler(answerService),
		Tags:          handlers.NewTagsHandler(tagService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		PasswordReset: handlers.NewPasswordResetHandler(resetService),
		Gate:          gate,
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
