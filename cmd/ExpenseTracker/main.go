package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/auth"
	"github.com/sebuszqo/ExpenseTracker/internal/config"
	database "github.com/sebuszqo/ExpenseTracker/internal/db"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("missing configuration, update to start server: %w", err)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		log.Info("Running database migrations")
		if err := database.RunMigrations(cfg.DBConnectionString); err != nil {
			return fmt.Errorf("could not migrate database: %w", err)
		}
	}

	dbService, err := database.NewDBService(ctx, database.Options{
		ConnectionString: cfg.DBConnectionString,
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetime:  cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		return fmt.Errorf("could not initialize database: %w", err)
	}
	defer dbService.Close()

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTDuration)
	if err != nil {
		return err
	}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, cfg.BcryptCost, log)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(userService, jwtManager, log)
	authHandler := auth.NewHandler(authService)

	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	expenseService := application.NewExpenseService(expenseRepo, log)
	expenseHandler := interfaces.NewExpenseHandler(expenseService, interfaces.RespondJSON, interfaces.RespondError)

	server := NewServer(authHandler, authService, userHandler, expenseHandler, dbService)
	server.RegisterRoutes()

	if cfg.PprofEnabled {
		log.Info("Starting pprof", "addr", cfg.PprofAddr)
		go func() {
			if err := http.ListenAndServe(cfg.PprofAddr, nil); err != nil {
				log.Error("pprof server stopped", "error", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           logger.Middleware(log)(server.router),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", "addr", httpServer.Addr)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
