package bootstrap

import (
	"context"
	"log/slog"

	"flea-market/internal/infra/events"
	"flea-market/internal/pkg/config"
	"flea-market/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) commands.EventPublisher {
	publisher := events.NewKafkaPublisher(cfg.Events)
	if publisher == nil {
		slog.Info("event publishing disabled, no kafka brokers configured")
		return events.NoopPublisher{}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	slog.Info("kafka event publisher initialized", "topic", cfg.Events.Topic)
	return publisher
}
