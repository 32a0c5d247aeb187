// Package notification turns workflow events and scheduled checks into
// messages for users. Delivery is abstracted behind Notifier; the default
// implementation only logs, real channels plug in behind the same
// interface.
package notification

import (
	"context"
	"log/slog"
)

type Message struct {
	Recipient string
	Subject   string
	Body      string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes every message to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.logger.Info("notification sent",
		"recipient", msg.Recipient,
		"subject", msg.Subject,
		"body", msg.Body)
	return nil
}
