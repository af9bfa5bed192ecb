package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/infra/config"
)

const schemaVersion = "1.0"

const (
	eventTypeUserRegistered = "user.registered"
	eventTypeBeerCreated    = "beer.created"
	eventTypeReviewCreated  = "review.created"
)

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventType string, userID int64, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	envelope := eventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		UserID:    strconv.FormatInt(userID, 10),
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered emits beer.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	return p.publish(ctx, eventTypeUserRegistered, event.UserID, event.RegisteredAt, event)
}

// PublishBeerCreated emits beer.beer.created events.
func (p *EventPublisher) PublishBeerCreated(ctx context.Context, event domain.BeerCreatedEvent) error {
	return p.publish(ctx, eventTypeBeerCreated, event.AuthorID, event.CreatedAt, event)
}

// PublishReviewCreated emits beer.review.created events.
func (p *EventPublisher) PublishReviewCreated(ctx context.Context, event domain.ReviewCreatedEvent) error {
	return p.publish(ctx, eventTypeReviewCreated, event.AuthorID, event.CreatedAt, event)
}
