package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	_ "go.uber.org/automaxprocs"

	"github.com/quizbase/quizbase/internal/bootstrap"
	"github.com/quizbase/quizbase/internal/config"
	"github.com/quizbase/quizbase/internal/server"
	"github.com/quizbase/quizbase/pkg/database"
	"github.com/quizbase/quizbase/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, sync := logger.New(cfg.LogLevel, cfg.LogJSON)
	defer sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}

	if err := bootstrap.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	srv := server.New(cfg, db, zlog)

	ctx := context.Background()
	admin, err := bootstrap.EnsureAdmin(ctx, srv.Auth(), zlog)
	if err != nil {
		zlog.Fatal("admin bootstrap failed", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := bootstrap.SeedDemoContent(ctx, db, admin, zlog); err != nil {
			zlog.Fatal("seeding failed", zap.Error(err))
		}
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", httpSrv.Addr), zap.String("env", cfg.AppEnv))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}
