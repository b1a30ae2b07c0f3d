package notify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRegistryFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write registry file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeRegistryFile(t, "notifiers.yaml", `
notifiers:
  - id: ops-webhook
    type: http
    http:
      url: https://hooks.example.com/briefing
      headers:
        X-Token: "abc"
  - id: briefing-topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:eu-south-1:123:briefings
      region: eu-south-1
  - id: briefing-queue
    type: sqs
    enabled: false
    sqs:
      queue_url: https://sqs.eu-south-1.amazonaws.com/123/briefings
      region: eu-south-1
  - id: briefing-pubsub
    type: pubsub
    pubsub:
      project_id: sport-briefing
      topic: published
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 4 {
		t.Fatalf("expected 4 notifiers, got %d", len(reg.All()))
	}
	if len(reg.Enabled()) != 3 {
		t.Fatalf("expected 3 enabled notifiers, got %d", len(reg.Enabled()))
	}

	cfg, ok := reg.ByID("ops-webhook")
	if !ok {
		t.Fatalf("ops-webhook missing from registry")
	}
	if cfg.HTTP.Method != "POST" {
		t.Fatalf("http method default not applied: %q", cfg.HTTP.Method)
	}
	if cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http timeout default not applied: %d", cfg.HTTP.TimeoutSeconds)
	}

	if _, ok := reg.ByID("briefing-pubsub"); !ok {
		t.Fatalf("pubsub notifier missing from registry")
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeRegistryFile(t, "notifiers.json", `{
  "notifiers": [
    {"id": "hook", "type": "http", "http": {"url": "https://hooks.example.com"}}
  ]
}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if _, ok := reg.ByID("hook"); !ok {
		t.Fatalf("hook missing from registry")
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	path := writeRegistryFile(t, "notifiers.yaml", `
notifiers:
  - id: hook
    type: http
    http: {url: "https://a.example.com"}
  - id: hook
    type: http
    http: {url: "https://b.example.com"}
`)

	if _, err := LoadRegistry(path); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadRegistryMissingRequiredFields(t *testing.T) {
	cases := map[string]string{
		"no id":           "notifiers:\n  - type: http\n    http: {url: \"https://a\"}\n",
		"no type":         "notifiers:\n  - id: hook\n",
		"sns no region":   "notifiers:\n  - id: a\n    type: sns\n    sns: {topic_arn: \"arn:x\"}\n",
		"sqs no url":      "notifiers:\n  - id: a\n    type: sqs\n    sqs: {region: eu-south-1}\n",
		"pubsub no topic": "notifiers:\n  - id: a\n    type: pubsub\n    pubsub: {project_id: p}\n",
	}
	for name, content := range cases {
		path := writeRegistryFile(t, "notifiers.yaml", content)
		if _, err := LoadRegistry(path); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadRegistryEmptyFile(t *testing.T) {
	path := writeRegistryFile(t, "notifiers.yaml", "notifiers: []\n")
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestDefaultRegistryKnowsAllTypes(t *testing.T) {
	reg := DefaultRegistry().(*registry)
	for _, typ := range []string{TypeHTTP, TypeSNS, TypeSQS, TypePubSub} {
		if reg.builders[typ] == nil {
			t.Fatalf("type %q has no builder", typ)
		}
	}
}
