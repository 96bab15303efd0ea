package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-todo-client/internal/client"
	"github.com/redmonkez12/go-todo-client/internal/config"
	"github.com/redmonkez12/go-todo-client/internal/logging"
	"github.com/redmonkez12/go-todo-client/internal/session"
)

// app holds the dependencies shared by every command
type app struct {
	out     io.Writer
	errOut  io.Writer
	cfg     *config.Config
	logger  *logging.Logger
	client  *client.Client
	closers []func() error
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	a.cfg = cfg

	a.logger = logging.Discard()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		a.logger = logging.New(a.errOut, cfg.IsDevelopment())
	}

	store, err := a.openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	a.client = client.New(cfg.API.BaseURL, session.New(store),
		client.WithLogger(a.logger),
		client.WithTimeout(cfg.API.RequestTimeout),
	)
	return nil
}

func (a *app) openStore(ctx context.Context) (session.Store, error) {
	switch a.cfg.Session.Store {
	case config.StoreMemory:
		a.logger.Warn("memory session store: the token is forgotten when the command exits")
		return session.NewMemoryStore(), nil
	case config.StoreRedis:
		redisClient, err := initRedis(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, redisClient.Close)
		return session.NewRedisStore(redisClient, a.cfg.Session.RedisPrefix), nil
	default:
		return session.NewFileStore(a.cfg.Session.FilePath, a.cfg.Session.Passphrase), nil
	}
}

func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
