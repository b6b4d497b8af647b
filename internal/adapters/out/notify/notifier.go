// Package notify implements the notification port as a structured-log sink.
// Real message delivery (SMS, email) is an external collaborator; this
// adapter records what would have been sent so the claim and completion flows
// exercise the port. Notification is best effort and never fails the state
// change it announces.
package notify

import (
	"context"
	"log/slog"

	"communitydelivery/internal/core/domain/model/kernel"
)

// LogNotifier implements ports.Notifier by writing each event to the logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// NotifyDeliveryClaimed tells the recipient their delivery was claimed.
func (n *LogNotifier) NotifyDeliveryClaimed(
	ctx context.Context,
	deliveryID kernel.UUID,
	recipientID kernel.UUID,
) error {
	n.notify(ctx, "delivery claimed", deliveryID, recipientID)
	return nil
}

// NotifyDeliveryCompleted tells the recipient their delivery arrived.
func (n *LogNotifier) NotifyDeliveryCompleted(
	ctx context.Context,
	deliveryID kernel.UUID,
	recipientID kernel.UUID,
) error {
	n.notify(ctx, "delivery completed", deliveryID, recipientID)
	return nil
}

// NotifyDeliveryRequeued tells the recipient their delivery went back to the
// open pool.
func (n *LogNotifier) NotifyDeliveryRequeued(
	ctx context.Context,
	deliveryID kernel.UUID,
	recipientID kernel.UUID,
) error {
	n.notify(ctx, "delivery requeued", deliveryID, recipientID)
	return nil
}

func (n *LogNotifier) notify(ctx context.Context, event string, deliveryID, recipientID kernel.UUID) {
	n.logger.InfoContext(ctx, event,
		"delivery_id", deliveryID.String(),
		"recipient_id", recipientID.String(),
	)
}
