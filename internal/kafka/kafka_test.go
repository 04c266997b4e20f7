package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/RaikyD/tailor-calendar/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type refresherStub struct {
	calls  int
	result bool
}

func (r *refresherStub) Refresh(context.Context) bool {
	r.calls++
	return r.result
}

func TestOutcomeMessage(t *testing.T) {
	id := uuid.New()
	e := domain.JournalEntry{
		ID:         id,
		OrderID:    "O1",
		Outcome:    domain.OutcomeRolledBack,
		Error:      "Resource not found.",
		RecordedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	msg, err := outcomeMessage(e)
	if err != nil {
		t.Fatalf("outcome message: %v", err)
	}
	if string(msg.Key) != "O1" {
		t.Fatalf("key = %q, want O1", msg.Key)
	}
	if got := header(msg, "event_type"); got != "appointment.rolled_back" {
		t.Fatalf("event_type = %q", got)
	}
	if got := header(msg, "event_id"); got != id.String() {
		t.Fatalf("event_id = %q", got)
	}

	var decoded domain.JournalEntry
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if decoded.Outcome != domain.OutcomeRolledBack || decoded.Error != "Resource not found." {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestHandleScheduleChange(t *testing.T) {
	svc := &refresherStub{result: true}
	ok := handleScheduleChange(context.Background(), svc, kafka.Message{Value: []byte(`{"order_id":"O1"}`)})
	if !ok || svc.calls != 1 {
		t.Fatalf("refreshed = %v, calls = %d", ok, svc.calls)
	}

	ok = handleScheduleChange(context.Background(), svc, kafka.Message{Value: []byte(`not json`)})
	if !ok || svc.calls != 2 {
		t.Fatalf("invalid payload should still refresh: refreshed = %v, calls = %d", ok, svc.calls)
	}
}

func TestSplitBrokers(t *testing.T) {
	got := splitBrokers(" k1:9092, ,k2:9092 ")
	if len(got) != 2 || got[0] != "k1:9092" || got[1] != "k2:9092" {
		t.Fatalf("brokers = %v", got)
	}
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
