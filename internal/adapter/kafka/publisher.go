package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/fish-stock-map-service/internal/config"
	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// Publisher produces prediction events to a Kafka topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured prediction topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaPredictionTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish writes one prediction event. Events are keyed by province so a
// province's predictions stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, prediction domain.Prediction) error {
	msg, err := serializeToMessage(prediction)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish prediction %s: %w", prediction.ID, err)
	}
	p.logger.Debug("prediction event published", "id", prediction.ID, "topic", p.writer.Topic)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a Prediction into a Kafka message.
func serializeToMessage(prediction domain.Prediction) (kafkago.Message, error) {
	data, err := json.Marshal(prediction)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize prediction: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(prediction.Features.Province),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "prediction_id", Value: []byte(prediction.ID)},
			{Key: "label", Value: []byte(prediction.Label)},
			{Key: "predicted_at", Value: []byte(prediction.PredictedAt.Format(time.RFC3339))},
		},
	}, nil
}
