package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"flea-market/internal/pkg/config"
	"flea-market/internal/pkg/errs"
	"flea-market/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher emits purchase-completed events keyed by purchase id so
// all events for one purchase land on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.EventsConfig) *KafkaPublisher {
	brokers := []string{}
	for _, b := range strings.Split(cfg.Brokers, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) PublishPurchaseCompleted(ctx context.Context, event commands.PurchaseCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal purchase event")
	}
	msg := kafka.Message{
		Key:   []byte(event.PurchaseID.String()),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to write purchase event")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher stands in when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPurchaseCompleted(context.Context, commands.PurchaseCompletedEvent) error {
	return nil
}
