package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/configs"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/bootstrap"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/logging"
)

func main() {
	envName := os.Getenv("WAVEORDER_ENV")
	if envName == "" {
		envName = "dev"
	}
	cfgDir := os.Getenv("WAVEORDER_CONFIG_DIR")
	if cfgDir == "" {
		cfgDir = "./configs"
	}

	cfg, err := configs.Load(cfgDir, envName)
	if err != nil {
		// logger not up yet
		panic(err)
	}

	logFile := cfg.App.LogFile
	if logFile == "" {
		logFile = "./logs/app.log"
	}
	log := logging.Init("storefront-api", logFile, cfg.App.LogLevel)

	app, cleanup, err := bootstrap.InitWithConfig(cfg)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      app.Router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.StartConsumers(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("stock consumer stopped", "error", err)
		}
	}()

	go func() {
		log.Info("listening", "addr", cfg.App.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
