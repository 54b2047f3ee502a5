package bootstrap

import (
	"flea-market/cmd/bootstrap/components"
	"flea-market/internal/pkg/metrics"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	SessionModule,
	StorageModule,
	EventsModule,
	fx.Provide(metrics.NewServerMetrics),
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
