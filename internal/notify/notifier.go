package notify

import (
	"context"

	"go.uber.org/zap"
)

// Message is a notification about an intake submission. Rendering and
// delivery belong to an external mailer; the backend only hands over the
// structured fields.
type Message struct {
	Kind    string
	Subject string
	ReplyTo string
	Fields  map[string]any
}

// Notifier delivers intake notifications to the site owner.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier is the default Notifier; it records the notification and does
// nothing else.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.log.Info("notification",
		zap.String("kind", msg.Kind),
		zap.String("subject", msg.Subject),
		zap.String("reply_to", msg.ReplyTo),
		zap.Any("fields", msg.Fields),
	)
	return nil
}
