package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-underwriter/internal/config"
	"github.com/couchcryptid/storm-underwriter/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces decision events to a Kafka topic.
// It implements underwriting.DecisionPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured decision topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaDecisionTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a decided application and writes it keyed by
// application ID.
func (w *Writer) Publish(ctx context.Context, app *domain.Application) error {
	msg, err := serializeToMessage(app)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write decision %s: %w", app.ID, err)
	}
	w.logger.Debug("decision published", "application_id", app.ID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Application into a Kafka message.
func serializeToMessage(app *domain.Application) (kafkago.Message, error) {
	if app.Decision == nil {
		return kafkago.Message{}, fmt.Errorf("application %s has no decision", app.ID)
	}
	data, err := json.Marshal(app)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize application: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(app.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "outcome", Value: []byte(app.Decision.Outcome)},
			{Key: "decided_at", Value: []byte(app.DecidedAt.Format(time.RFC3339))},
		},
	}, nil
}
