package bootstrap

import (
	"context"
	"log/slog"

	"flea-market/internal/infra/blobstore"
	"flea-market/internal/pkg/clock"
	"flea-market/internal/pkg/config"
	"flea-market/internal/usecase/commands"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewBlobStore,
		func(s *blobstore.Store) commands.BlobStore { return s },
	),
)

func NewBlobStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) *blobstore.Store {
	store := blobstore.New(cfg.Storage, clk)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if err := store.Init(); err != nil {
				return err
			}
			if cfg.Storage.PurgeOnInit {
				slog.Warn("purging blob store", "location", cfg.Storage.Location)
				return store.PurgeAll()
			}
			return nil
		},
	})

	return store
}
