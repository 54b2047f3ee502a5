package bootstrap

import (
	"context"
	"log/slog"

	"flea-market/internal/infra/sessionstore"
	"flea-market/internal/pkg/config"
	"flea-market/internal/usecase/commands"
	"flea-market/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var SessionModule = fx.Module("sessions",
	fx.Provide(
		NewCartStore,
		func(s commands.CartStore) queries.CartReader { return s },
	),
)

// NewCartStore selects Redis when an address is configured and falls back
// to the in-process store otherwise.
func NewCartStore(lc fx.Lifecycle, cfg config.Config) commands.CartStore {
	if cfg.Redis.Addr == "" {
		slog.Info("using in-memory cart store")
		return sessionstore.NewMemoryCartStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("using redis cart store", "addr", cfg.Redis.Addr)
	return sessionstore.NewRedisCartStore(client, cfg.Redis.CartTTL)
}
