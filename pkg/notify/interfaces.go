package notify

import "context"

// Notifier sends briefing events to a downstream sink (HTTP, SNS, SQS, Pub/Sub).
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, evt Event) error
}
