// Package notifier contains buyer notification adapters. The production
// deployment plugs an email or SMS gateway in here; the default adapter
// writes structured log records so the notification flow is observable
// end-to-end without external infrastructure.
package notifier

import (
	"context"
	"log/slog"

	"autoimport/internal/core/domain/model/kernel"
)

// LogNotifier implements ports.Notifier by writing notifications to the
// structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the buyer-facing message.
func (n *LogNotifier) Notify(
	ctx context.Context, recipientID kernel.UUID, orderID kernel.UUID, message string,
) error {
	n.logger.InfoContext(ctx, "buyer notification",
		"recipientId", recipientID.String(),
		"orderId", orderID.String(),
		"message", message)
	return nil
}
