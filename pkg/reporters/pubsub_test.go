package reporters

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestPubSubReporterPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	admin, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer admin.Close()
	if _, err := admin.CreateTopic(ctx, "settlements"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	rep, err := newPubSubReporter(ctx, ReporterConfig{
		ID:     "ps",
		Type:   TypePubSub,
		PubSub: &PubSubConfig{ProjectID: "test-project", Topic: "settlements"},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubReporter: %v", err)
	}
	defer rep.(*pubsubReporter).Close()

	if err := rep.Report(ctx, Event{Method: "GET", Endpoint: "/api/reservations", OK: true}); err != nil {
		t.Fatalf("Report: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(msgs))
	}
	var evt Event
	if err := json.Unmarshal(msgs[0].Data, &evt); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if evt.Endpoint != "/api/reservations" || msgs[0].Attributes["method"] != "GET" {
		t.Fatalf("unexpected message %#v attrs=%v", evt, msgs[0].Attributes)
	}
}
