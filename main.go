package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_ledger/api"
	"api_ledger/internal/config"
	"api_ledger/internal/database"
	"api_ledger/internal/expenses"
	"api_ledger/internal/logger"
	"api_ledger/internal/sales"
	"api_ledger/internal/summary"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("error building logger: %v", err))
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	var (
		salesStorage   sales.Storage
		expenseStorage expenses.Storage
		db             *sql.DB
	)

	switch cfg.StoreBackend {
	case config.BackendMemory:
		salesStorage = sales.NewLocalStorage()
		expenseStorage = expenses.NewLocalStorage()
	default:
		var err error
		db, err = database.Open(cfg.SQLiteDBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close database", zap.Error(err))
			}
		}()
		salesStorage = sales.NewSQLiteStorage(db)
		expenseStorage = expenses.NewSQLiteStorage(db)
	}
	log.Info("store ready", zap.String("backend", cfg.StoreBackend), zap.String("path", cfg.SQLiteDBPath))

	salesService := sales.NewService(salesStorage, log.Named("sales"))
	expenseService := expenses.NewService(expenseStorage, log.Named("expenses"))
	summaryService := summary.NewService(salesStorage, expenseStorage, log.Named("summary"))

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(api.RequestLogger(log.Named("http")), api.Recovery(log), api.CORS(cfg.CORSOrigins))
	api.InitRoutes(r, api.Dependencies{
		Sales:     salesService,
		Expenses:  expenseService,
		Summary:   summaryService,
		Logger:    log,
		StaticDir: cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error trying to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}
