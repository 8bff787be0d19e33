package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kstarostin/campfire-store-api/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderProducer publishes placed orders for downstream consumers
// (fulfillment, notifications).
type OrderProducer struct {
	writer *kafka.Writer
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *OrderProducer) PublishOrderPlaced(ctx context.Context, ev service.OrderPlacedEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID.String()),
		Value: value,
	})
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
