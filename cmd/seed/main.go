// Package main loads a directory dataset into the database.
//
//	seed [-truncate] [-file path|s3://bucket/key]
//
// Without -file the built-in demo dataset is loaded.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/geo-directory/backend/config"
	"github.com/geo-directory/backend/internal/activities"
	"github.com/geo-directory/backend/internal/seed"
	"github.com/geo-directory/backend/pkg/database"
	"github.com/geo-directory/backend/pkg/logger"
	"github.com/geo-directory/backend/pkg/redis"
	"github.com/geo-directory/backend/pkg/storage"
)

func main() {
	truncate := flag.Bool("truncate", false, "delete all directory rows before loading")
	file := flag.String("file", "", "dataset JSON: local path or s3://bucket/key (default: built-in dataset)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info", false).Fatal("load config", zap.Error(err))
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Debug)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	ds, err := loadDataset(ctx, cfg, *file, log)
	if err != nil {
		log.Fatal("dataset", zap.Error(err))
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns), log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	var cache activities.TreeCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}, log)
		if err != nil {
			log.Warn("redis unavailable, cached activity trees expire by TTL only", zap.Error(err))
		} else {
			defer rdb.Close()
			cache = activities.NewRedisTreeCache(rdb.Client, 0)
		}
	}

	sum, err := seed.NewLoader(pool, cache, log).Load(ctx, ds, *truncate)
	if err != nil {
		log.Fatal("seed", zap.Error(err))
	}

	fmt.Printf("Seed OK: %d activities, %d buildings, %d organizations.\n", sum.Activities, sum.Buildings, sum.Organizations)
	fmt.Println("Try:")
	fmt.Println("  GET /api/v1/activities/tree")
	fmt.Println("  GET /api/v1/organizations?name=cafe")
	fmt.Println("  GET /api/v1/organizations/geo?lat=42.6977&lon=23.3219&radius_m=2000")
	fmt.Println("  GET /api/v1/organizations/geo?min_lat=42.68&min_lon=23.30&max_lat=42.71&max_lon=23.33")
}

func loadDataset(ctx context.Context, cfg *config.Config, src string, log *zap.Logger) (*seed.Dataset, error) {
	if src == "" {
		return seed.Default(), nil
	}
	var s3Client *storage.S3
	if strings.HasPrefix(src, "s3://") {
		var err error
		s3Client, err = storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.Endpoint,
		}, log)
		if err != nil {
			return nil, err
		}
	}
	data, err := storage.ReadSource(ctx, s3Client, src)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}
