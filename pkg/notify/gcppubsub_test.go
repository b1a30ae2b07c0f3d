package notify

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestPubSubNotifierPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "briefings"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	n, err := newPubSubNotifier(ctx, NotifierConfig{
		ID:   "briefing-pubsub",
		Type: TypePubSub,
		PubSub: &PubSubNotifierConfig{
			ProjectID: "test-project",
			Topic:     "briefings",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubNotifier: %v", err)
	}

	evt := NewEvent("Riepilogo del 2026-03-02", "2026-03-02", "https://notion.example/p1", true, 7, 12)
	if err := n.Notify(ctx, evt); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(msgs))
	}
	if got := msgs[0].Attributes["briefing_date"]; got != "2026-03-02" {
		t.Fatalf("briefing_date attribute = %q", got)
	}
}

func TestPubSubNotifierMissingConfig(t *testing.T) {
	if _, err := newPubSubNotifier(context.Background(), NotifierConfig{ID: "a", Type: TypePubSub}, nil); err == nil {
		t.Fatalf("expected error for missing pubsub config")
	}
}
