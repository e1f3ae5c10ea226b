package repository

import (
	"context"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	pkgkafka "StockLens/pkg/kafka"
)

// KafkaPredictionPublisher emits prediction events keyed by symbol so
// consumers see per-symbol ordering.
type KafkaPredictionPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPredictionPublisher creates a Kafka prediction publisher.
func NewKafkaPredictionPublisher(producer *pkgkafka.Producer, topic string) domrepo.PredictionPublisher {
	return &KafkaPredictionPublisher{producer: producer, topic: topic}
}

func (p *KafkaPredictionPublisher) Publish(ctx context.Context, pred *models.Prediction) error {
	return p.producer.Publish(ctx, p.topic, []byte(pred.Symbol), pred)
}

func (p *KafkaPredictionPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
