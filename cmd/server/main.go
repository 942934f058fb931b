package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/groupfit/backend/api/handler"
	"github.com/groupfit/backend/internal/config"
	"github.com/groupfit/backend/internal/infrastructure/monitor"
	pgInfra "github.com/groupfit/backend/internal/infrastructure/postgres"
	"github.com/groupfit/backend/internal/infrastructure/prefs"
	redisInfra "github.com/groupfit/backend/internal/infrastructure/redis"
	"github.com/groupfit/backend/internal/middleware"
	"github.com/groupfit/backend/internal/router"
	"github.com/groupfit/backend/internal/services"
	"github.com/groupfit/backend/internal/services/lifecycle"
	"github.com/groupfit/backend/pkg/httpcontext"
	"github.com/groupfit/backend/pkg/logger"
	"github.com/groupfit/backend/repository/postgres"
	redisRepo "github.com/groupfit/backend/repository/redis"
	authUC "github.com/groupfit/backend/usecase/auth"
	"github.com/groupfit/backend/usecase/cache"
	"github.com/groupfit/backend/usecase/filters"
	groupingUC "github.com/groupfit/backend/usecase/grouping"
	profileUC "github.com/groupfit/backend/usecase/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if cfg.Migrations.Enabled {
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	prefStore, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		zapLogger.Fatal("failed to open prefs store", zap.Error(err))
	}
	manager.Register("prefs", func(ctx context.Context) error {
		return prefStore.Close()
	})

	taskRepo := postgres.NewTaskRepository(pool)
	groupingRepo := postgres.NewGroupingRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	filterRepo := postgres.NewFilterRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	caches := cache.NewManager(taskRepo, groupingRepo, memberRepo, profileRepo, zapLogger)

	mon := monitor.New(pool, redisClient, prefStore, caches, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	authUseCase := authUC.New(profileRepo, sessionRepo, caches, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	profileUseCase := profileUC.New(profileRepo, zapLogger)
	groupingUseCase := groupingUC.New(groupingRepo, memberRepo, zapLogger)
	filterStore := filters.NewStore(filterRepo, prefStore, zapLogger)

	if cfg.Notifier.Enabled {
		notifier := services.NewNotifier(caches, zapLogger, services.NotifierConfig{
			Interval: cfg.Notifier.Interval,
		})
		notifier.Start()
		manager.Register("notifier", func(ctx context.Context) error {
			notifier.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Session.TTL),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(caches, ctxAdapter, zapLogger),
		Grouping: apiHandler.NewGroupingHandler(groupingUseCase, caches, ctxAdapter, zapLogger),
		Calendar: apiHandler.NewCalendarHandler(caches, filterStore, ctxAdapter, zapLogger),
		Filter:   apiHandler.NewFilterHandler(filterStore, caches, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
