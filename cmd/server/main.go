// Package main runs the directory HTTP API with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/geo-directory/backend/config"
	"github.com/geo-directory/backend/internal/activities"
	"github.com/geo-directory/backend/internal/auth"
	"github.com/geo-directory/backend/internal/buildings"
	"github.com/geo-directory/backend/internal/organizations"
	"github.com/geo-directory/backend/internal/server"
	"github.com/geo-directory/backend/pkg/database"
	"github.com/geo-directory/backend/pkg/logger"
	"github.com/geo-directory/backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", false).Fatal("load config", zap.Error(err))
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Debug)
	defer log.Sync()
	if !cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns), log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
	}

	var treeCache activities.TreeCache = activities.NoopTreeCache{}
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}, log)
		if err != nil {
			log.Warn("redis unavailable, activity tree cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			treeCache = activities.NewRedisTreeCache(rdb.Client, time.Duration(cfg.Redis.TreeCacheTTL)*time.Second)
		}
	}

	maxLimit := cfg.Pagination.MaxLimit

	// Activities
	activityRepo := activities.NewRepository(pool, maxLimit)
	activitySvc := activities.NewService(activityRepo, treeCache, log)

	// Organizations
	orgRepo := organizations.NewRepository(pool, maxLimit)
	orgSvc := organizations.NewService(orgRepo, activitySvc)

	// Buildings
	buildingRepo := buildings.NewRepository(pool, maxLimit)
	buildingSvc := buildings.NewService(buildingRepo, orgSvc)

	router := server.NewRouter(server.Deps{
		Activities:    activities.NewHandler(activitySvc),
		Buildings:     buildings.NewHandler(buildingSvc),
		Organizations: organizations.NewHandler(orgSvc),
		Auth:          auth.NewAuthenticator(cfg.Auth),
		DB:            pool,
		CORSOrigins:   cfg.Server.CORSAllowedOrigins,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port), zap.Bool("jwt_enabled", cfg.Auth.JWTEnabled()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
