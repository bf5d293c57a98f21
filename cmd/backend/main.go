package main

import (
	"Storefront/backend"
	"Storefront/config"
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the configuration file")
	memory := flag.Bool("memory", false, "keep inventory and cart in memory instead of MySQL")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("無法讀取設定檔: %v", err)
	}

	logger, err := config.SetupLogger(cfg.Log)
	if err != nil {
		log.Fatalf("無法建立日誌: %v", err)
	}
	defer logger.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store backend.Store
	if *memory {
		store = backend.NewMemoryStore()
		logger.Info("using in-memory store")
	} else {
		db, err := config.SetupMySQLConnection(cfg.Database)
		if err != nil {
			logger.Fatal("無法連接到資料庫", zap.Error(err))
		}
		defer func() {
			dbInstance, _ := db.DB()
			_ = dbInstance.Close()
		}()
		store = backend.NewGormStore(db)
	}

	var inventoryCache backend.InventoryCache = backend.NoCache{}
	rdb := config.SetupRedisConnection(cfg.Redis)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, inventory cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	} else {
		inventoryCache = backend.NewRedisInventoryCache(rdb, logger)
	}

	if err := store.SeedInventory(ctx, cfg.Seed); err != nil {
		logger.Fatal("seed inventory", zap.Error(err))
	}
	if err := inventoryCache.Invalidate(ctx); err != nil {
		logger.Warn("invalidate inventory cache", zap.Error(err))
	}

	server := &http.Server{
		Addr:    cfg.Backend.Addr,
		Handler: backend.SetupRouter(store, inventoryCache, logger),
	}

	go func() {
		logger.Info("backend listening", zap.String("addr", cfg.Backend.Addr), zap.Int("seed", len(cfg.Seed)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("backend server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
