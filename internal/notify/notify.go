// Package notify delivers the run summary to the user.
package notify

import "context"

const (
	report_telegram_send = "telegram.send"
	report_email_send    = "email.send"
)

// Notifier delivers a message, delivery failures are reported through
// telemetry and never returned.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Multi delivers every message to each of its notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, message string) {
	for _, n := range m {
		n.Notify(ctx, message)
	}
}
