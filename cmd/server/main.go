package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/visitbeacon/internal/config"
	"github.com/visitbeacon/internal/db"
	"github.com/visitbeacon/internal/logging"
	"github.com/visitbeacon/internal/router"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg)
	stop()
	if err != nil {
		log.Printf("server exited: %v", err)
		os.Exit(1)
	}
}

// run 启动服务并阻塞到 ctx 结束；所有资源在返回前释放。
func run(ctx context.Context, cfg config.AppConfig) error {
	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Open(cfg.DatabaseURL, logging.GormLogger(logger, cfg.LogLevel))
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return err
	}
	defer db.Close(gdb)

	if cfg.SeedFile != "" {
		result, err := db.HydrateFile(ctx, gdb, cfg.SeedFile, logger)
		if err != nil {
			logger.Error("failed to hydrate seed data", "path", cfg.SeedFile, "error", err)
			return err
		}
		logger.Info("seed data hydrated", "inserted", result.Inserted, "failed", result.Failed)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(cfg, gdb, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server failed", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
