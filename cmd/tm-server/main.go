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

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/logging"
	"taskmaster/internal/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var overrides config.ConfigOverrides
	addr := flag.String("addr", "", "Listen address (overrides TM_SERVER_ADDR)")
	dbDir := flag.String("db-dir", "", "Database directory (overrides TM_DB_DIR)")
	logLevel := flag.String("log-level", "", "Log level (overrides TM_LOG_LEVEL)")
	flag.Parse()
	if *addr != "" {
		overrides.ServerAddr = addr
	}
	if *dbDir != "" {
		overrides.DBDir = dbDir
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	cfg, err := config.NewLoader().LoadWithOverrides(&overrides)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger := logging.New(os.Stderr, logging.Options{
		Level:           cfg.Logging.Level,
		Format:          cfg.Logging.Format,
		ReportTimestamp: true,
	})

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return fmt.Errorf("creating repository: %w", err)
	}
	defer repo.Close()

	server := api.NewServer(services.NewTodoService(repo), services.NewCategoryService(repo), logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "db", cfg.GetDatabasePath())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
