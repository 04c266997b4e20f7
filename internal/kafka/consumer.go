package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RaikyD/tailor-calendar/internal/logger"
	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// Refresher re-fetches the period currently on screen.
type Refresher interface {
	Refresh(ctx context.Context) bool
}

// scheduleChange is what the orders service emits when fitting or
// collection dates change. Only order_id is used, for logging.
type scheduleChange struct {
	OrderID string `json:"order_id"`
}

// StartConsumer refreshes the calendar whenever another writer changes an
// order's schedule. The reader closes itself once ctx is cancelled.
func StartConsumer(ctx context.Context, svc Refresher, cfg ConsumerConfig) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         splitBrokers(cfg.Brokers),
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.LastOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()

		backoff := time.Millisecond * 300
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				time.Sleep(backoff)
				continue
			}

			handleScheduleChange(ctx, svc, m)

			if err := r.CommitMessages(ctx, m); err != nil {
				logger.Warn("[kafka] commit failed", "err", err)
			}
		}
	}()
}

// handleScheduleChange reports whether a refresh ran. Undecodable payloads
// still trigger a refresh since any change makes the view stale.
func handleScheduleChange(ctx context.Context, svc Refresher, m kafka.Message) bool {
	var ev scheduleChange
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		logger.Warn("kafka schedule change: invalid json", "err", err, "offset", m.Offset)
	}

	refreshed := svc.Refresh(ctx)
	logger.Info("schedule change received",
		"order_id", ev.OrderID,
		"partition", m.Partition,
		"offset", m.Offset,
		"refreshed", refreshed,
	)
	return refreshed
}
