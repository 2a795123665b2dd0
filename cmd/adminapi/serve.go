package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/config"
	gatewayhttp "github.com/Abdallah-SE/ecommerce-api/gateway/http"
	"github.com/Abdallah-SE/ecommerce-api/health"
	"github.com/Abdallah-SE/ecommerce-api/metric"
	"github.com/Abdallah-SE/ecommerce-api/respond"
	"github.com/Abdallah-SE/ecommerce-api/service"
	"github.com/Abdallah-SE/ecommerce-api/storage"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Bool("debug", false, "expose error detail in responses")
	cmd.Flags().String("server.addr", ":8080", "listen address")
	cmd.Flags().String("database.driver", "sqlite", "database driver (sqlite, postgres, mysql)")
	cmd.Flags().String("database.dsn", config.DefaultDSN, "database DSN")
	cmd.Flags().String("log.level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().String("log.format", "json", "log format (json, text)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	logger.Info("starting admin API",
		"addr", cfg.Server.Addr,
		"driver", cfg.Database.Driver,
		"debug", cfg.Debug)

	db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := storage.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store := storage.NewAdminStore(db)
	server := gatewayhttp.NewServer(
		service.NewAdminService(store),
		store,
		auth.NewTokenManager(cfg.Auth.TokenTTL),
		respond.NewRenderer(cfg.Debug, logger),
		metric.NewRegistry(),
		health.NewChecker(db),
		logger,
	)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped cleanly")
	return nil
}
