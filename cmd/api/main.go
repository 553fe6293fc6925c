package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lentera-edu/timetable-api/internal/handler"
	"github.com/lentera-edu/timetable-api/internal/middleware"
	"github.com/lentera-edu/timetable-api/internal/service"
	"github.com/lentera-edu/timetable-api/internal/timetable"
	"github.com/lentera-edu/timetable-api/pkg/cache"
	"github.com/lentera-edu/timetable-api/pkg/config"
	"github.com/lentera-edu/timetable-api/pkg/logger"
	"github.com/lentera-edu/timetable-api/pkg/middleware/cors"
	"github.com/lentera-edu/timetable-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	policy, err := timetable.PolicyFromConfig(cfg.Scheduler)
	if err != nil {
		zapLogger.Fatal("invalid scheduler config", zap.Error(err))
	}
	prefs, err := timetable.ParseFloorPreferences(cfg.Rooms.FloorPreferences)
	if err != nil {
		zapLogger.Fatal("invalid room config", zap.Error(err))
	}

	metrics := service.NewMetricsService()

	var store service.RunStore
	if cfg.RunCache.Enabled {
		client, err := cache.NewRedis(cfg.RunCache)
		if err != nil {
			zapLogger.Fatal("connect redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		store = service.NewRedisRunStore(client, cfg.Scheduler.RunTTL)
		zapLogger.Info("run store: redis", zap.String("host", cfg.RunCache.Host))
	} else {
		store = service.NewMemoryRunStore(cfg.Scheduler.RunTTL)
		zapLogger.Info("run store: in-memory", zap.Duration("ttl", cfg.Scheduler.RunTTL))
	}

	timetableService := service.NewTimetableService(
		policy,
		timetable.DefaultCatalog(),
		prefs,
		nil,
		zapLogger,
		store,
		metrics,
	)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(zapLogger))
	router.Use(cors.New(cfg.CORS.AllowedOrigins))
	router.Use(middleware.Metrics(metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group(cfg.APIPrefix)
	handler.NewTimetableHandler(timetableService).RegisterRoutes(api)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
