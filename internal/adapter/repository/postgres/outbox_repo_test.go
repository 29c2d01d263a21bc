package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/paymatch/paymatch/internal/infrastructure/postgres/generated"
)

func TestRowToOutboxEvent(t *testing.T) {
	created := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	event := rowToOutboxEvent(generated.OutboxEvent{
		ID:            "evt-1",
		AggregateID:   "sugg-1",
		AggregateType: "match_suggestion",
		EventType:     "match.approved",
		Payload:       []byte(`{"transaction_id":"txn-1","invoice_id":"inv-1"}`),
		CreatedAt:     timeToPgTimestamptz(created),
	})

	if event.ID != "evt-1" || event.EventType != "match.approved" {
		t.Fatalf("unexpected event mapping: %+v", event)
	}
	if event.Payload["transaction_id"] != "txn-1" {
		t.Errorf("expected decoded payload, got %v", event.Payload)
	}
	if !event.CreatedAt.Equal(created) {
		t.Errorf("expected created_at %s, got %s", created, event.CreatedAt)
	}
	if event.PublishedAt != nil || event.Published {
		t.Error("expected event to be unpublished")
	}
}

func TestRowToOutboxEventCorruptPayload(t *testing.T) {
	var buf strings.Builder
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	event := rowToOutboxEvent(generated.OutboxEvent{
		ID:      "evt-bad",
		Payload: []byte(`{"truncated`),
	})

	if event.Payload != nil {
		t.Errorf("expected nil payload for a corrupt row, got %v", event.Payload)
	}
	if !strings.Contains(buf.String(), "corrupt outbox payload") {
		t.Error("expected the corrupt payload to be logged")
	}
	if !strings.Contains(buf.String(), "evt-bad") {
		t.Error("expected the event id in the log entry")
	}
}
