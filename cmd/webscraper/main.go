// Package main wires together the webscraper service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/primerlabs/webscraper/internal/api"
	"github.com/primerlabs/webscraper/internal/config"
	"github.com/primerlabs/webscraper/internal/engine/headless"
	"github.com/primerlabs/webscraper/internal/logging"
	"github.com/primerlabs/webscraper/internal/scraper"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var engine scraper.Engine
	if cfg.Headless.Enabled {
		engine, err = headless.New(headless.Config{
			MaxParallel: cfg.Headless.MaxParallel,
			NavTimeout:  cfg.NavTimeout(),
		}, logger.Named("engine"))
		if err != nil {
			logger.Fatal("engine init failed", zap.Error(err))
		}
	} else {
		logger.Warn("headless engine disabled; crawl requests will fail after retries")
		engine = headless.NewNoop()
	}

	orch := scraper.NewOrchestrator(engine, scraper.OrchestratorConfig{
		MaxAttempts: cfg.Crawl.MaxAttempts,
		RetryDelay:  cfg.RetryDelay(),
	}, logger.Named("orchestrator"))

	apiServer := api.NewServer(orch, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
