package main

import (
	"Storefront/api"
	"Storefront/cache"
	"Storefront/config"
	"Storefront/controller"
	"Storefront/handlers"
	"Storefront/routers"
	"Storefront/session"
	"Storefront/view"
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

type cartStore interface {
	controller.CartCache
	handlers.CartSnapshots
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the configuration file")
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

	var carts cartStore = cache.Nop{}
	rdb := config.SetupRedisConnection(cfg.Redis)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, cart snapshots disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	} else {
		carts = cache.NewRedisCartCache(rdb)
	}

	signer, err := session.LoadSigner(cfg.Session.PrivateKeyPath, cfg.Session.PublicKeyPath)
	if err != nil {
		logger.Fatal("load session keys", zap.Error(err))
	}

	remote := api.NewClient(cfg.Backend.BaseURL, &http.Client{Timeout: cfg.Backend.Timeout}, logger)
	registry := controller.NewRegistry(func(sessionID string) *controller.Session {
		v := view.New()
		return &controller.Session{
			ID:         sessionID,
			View:       v,
			Controller: controller.New(sessionID, remote, v, carts, logger),
		}
	}, cfg.Session.TTL)
	go registry.Run(ctx, min(cfg.Session.TTL, 10*time.Minute))

	router := routers.SetupRouters(routers.Options{
		Registry:   registry,
		Snapshots:  carts,
		Signer:     signer,
		SessionTTL: cfg.Session.TTL,
		Logger:     logger,
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("storefront listening", zap.String("addr", cfg.Server.Addr), zap.String("backend", cfg.Backend.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("storefront server", zap.Error(err))
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
