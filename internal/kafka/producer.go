package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/RaikyD/tailor-calendar/internal/domain"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(splitBrokers(brokersSTR)...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishOutcome emits one appointment outcome, keyed by order id so all
// events of an order land on the same partition.
func (p *Producer) PublishOutcome(ctx context.Context, e domain.JournalEntry) error {
	msg, err := outcomeMessage(e)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

func outcomeMessage(e domain.JournalEntry) (kafka.Message, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(e.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event_id", Value: []byte(e.ID.String())},
			{Key: "event_type", Value: []byte("appointment." + string(e.Outcome))},
		},
	}, nil
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
