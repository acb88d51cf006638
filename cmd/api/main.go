package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"filmorate/proj/internal/api/tasks"
	"filmorate/proj/internal/cache"
	"filmorate/proj/internal/config"
	"filmorate/proj/internal/lib/logger"
	"filmorate/proj/internal/services"
	"filmorate/proj/internal/storage/memory"
	"filmorate/proj/internal/storage/postgres"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	storage := mustOpenStorage(cfg, log)

	var popularCache *cache.Cache
	if cfg.Cache.Enabled {
		popularCache = cache.New(log, cfg.Cache.Addr, cfg.Cache.TTL)
		defer popularCache.Close()
	}

	bgTasks := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.MaxQueueSize)
	bgTasks.Run()

	app := NewApplication(cfg, log, services.New(log, storage, popularCache, bgTasks))
	if err := app.serve(); err != nil {
		log.Error("server stopped", "reason", err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := bgTasks.Shutdown(ctx); err != nil {
		os.Exit(1)
	}
}

func mustOpenStorage(cfg *config.Config, log *slog.Logger) services.Storage {
	switch cfg.Storage {
	case config.StoragePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
		if err != nil {
			panic(err)
		}
		log.Info("database connection established")
		return db
	default:
		log.Info("using in-memory storage")
		return memory.New()
	}
}
