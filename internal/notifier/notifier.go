// Package notifier delivers operator alerts.
package notifier

import "context"

// Notifier sends a text message, retrying up to maxRetries times.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Noop discards every message. Used when Telegram is not configured.
type Noop struct{}

func (Noop) SendWithRetry(context.Context, string, int) error { return nil }
