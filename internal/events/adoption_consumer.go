package events

import (
	"context"
	"errors"
	"time"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	kafkago "github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// StatusChanger moves a pet to a new lifecycle status.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, id bson.ObjectID, status petDomain.Status) (*application.PetDTO, error)
}

// messageReader is the subset of *kafkago.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

const (
	defaultRetryBackoff = 500 * time.Millisecond
	maxRetryBackoff     = 30 * time.Second
)

var adoptionTransitions = map[string]petDomain.Status{
	AdoptionRequested: petDomain.StatusPending,
	AdoptionCompleted: petDomain.StatusAdopted,
	AdoptionCancelled: petDomain.StatusAvailable,
}

// AdoptionEventConsumer listens to adoption events and keeps pet status in step.
type AdoptionEventConsumer struct {
	reader       messageReader
	service      StatusChanger
	logger       *zap.Logger
	retryBackoff time.Duration
}

// NewAdoptionEventConsumer creates a new AdoptionEventConsumer.
func NewAdoptionEventConsumer(
	brokers []string,
	groupID string,
	service StatusChanger,
	logger *zap.Logger,
) *AdoptionEventConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    TopicAdoptionEvents,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &AdoptionEventConsumer{
		reader:       reader,
		service:      service,
		logger:       logger,
		retryBackoff: defaultRetryBackoff,
	}
}

// Start begins consuming adoption events. This blocks until the context is cancelled.
// A message that fails to apply is retried until it succeeds; later messages wait behind it.
func (c *AdoptionEventConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if err := c.handleWithRetry(ctx, msg); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit adoption event", zap.Error(err))
		}
	}
}

// handleWithRetry applies msg, backing off exponentially between failures.
// It only gives up when ctx ends, leaving msg uncommitted.
func (c *AdoptionEventConsumer) handleWithRetry(ctx context.Context, msg kafkago.Message) error {
	backoff := c.retryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	for attempt := 1; ; attempt++ {
		err := c.handleMessage(ctx, msg)
		if err == nil {
			return nil
		}
		c.logger.Error("failed to handle adoption event",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}
}

// Close closes the underlying Kafka reader.
func (c *AdoptionEventConsumer) Close() error {
	return c.reader.Close()
}

func (c *AdoptionEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from adoption topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	status, ok := adoptionTransitions[cloudEvent.Type]
	if !ok {
		c.logger.Debug("ignoring unhandled adoption event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
	return c.handleAdoption(ctx, cloudEvent, status)
}

func (c *AdoptionEventConsumer) handleAdoption(ctx context.Context, cloudEvent CloudEvent, status petDomain.Status) error {
	var evt AdoptionEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse adoption event data", zap.Error(err))
		return nil // Don't retry malformed data
	}
	petID, err := bson.ObjectIDFromHex(evt.PetID)
	if err != nil {
		c.logger.Warn("adoption event with invalid pet id",
			zap.String("pet_id", evt.PetID),
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	_, err = c.service.ChangeStatus(ctx, petID, status)
	switch {
	case err == nil:
		c.logger.Info("pet status changed by adoption event",
			zap.String("pet_id", evt.PetID),
			zap.String("adoption_id", evt.AdoptionID),
			zap.String("status", string(status)),
		)
		return nil
	case errors.Is(err, petDomain.ErrPetNotFound), errors.Is(err, petDomain.ErrNotModified):
		c.logger.Info("adoption event left pet unchanged",
			zap.String("pet_id", evt.PetID),
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return nil
	default:
		return err
	}
}
