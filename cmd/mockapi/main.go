package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redmonkez12/go-todo-client/internal/config"
	"github.com/redmonkez12/go-todo-client/internal/logging"
	"github.com/redmonkez12/go-todo-client/internal/mockapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.IsDevelopment())
	logger.Info("starting mock API",
		"env", cfg.Env,
		"port", cfg.Mock.Port,
	)
	if len(cfg.Mock.PasetoKey) == 0 {
		logger.Warn("MOCK_PASETO_KEY not set, tokens will not survive a restart")
	}

	api, err := mockapi.New(mockapi.Options{
		TokenKey:       cfg.Mock.PasetoKey,
		TokenDuration:  cfg.Mock.TokenDuration,
		TrustedOrigins: cfg.Mock.TrustedOrigins,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mock API: %w", err)
	}

	server := mockapi.NewServer(
		":"+cfg.Mock.Port,
		api.Router(),
		cfg.Mock.ReadTimeout,
		cfg.Mock.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mock.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
