package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer writes CloudEvents to Kafka.
type Producer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewProducer creates a Producer. Topics are chosen per message.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		logger: logger,
	}
}

// PublishEvent writes ce to topic keyed by key.
func (p *Producer) PublishEvent(ctx context.Context, topic, key string, ce CloudEvent) error {
	value, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("marshal cloud event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}
	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("event_type", ce.Type),
		zap.String("event_id", ce.ID),
	)
	return nil
}

// PublishPetEvent publishes a pet lifecycle event keyed by pet id.
func (p *Producer) PublishPetEvent(ctx context.Context, eventType string, pet application.PetDTO) error {
	ce, err := NewCloudEvent(Source, eventType, pet)
	if err != nil {
		return err
	}
	return p.PublishEvent(ctx, TopicPetEvents, pet.ID, ce)
}

// Close flushes pending writes.
func (p *Producer) Close() error {
	return p.writer.Close()
}
