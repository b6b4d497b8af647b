package ports

import (
	"context"

	"communitydelivery/internal/core/domain/model/kernel"
)

// Notifier informs parties about delivery events. Notification is best
// effort: a failed send never rolls back the state change it announces.
type Notifier interface {
	// NotifyDeliveryClaimed tells the recipient their delivery was claimed.
	NotifyDeliveryClaimed(ctx context.Context, deliveryID kernel.UUID, recipientID kernel.UUID) error

	// NotifyDeliveryCompleted tells the recipient their delivery arrived.
	NotifyDeliveryCompleted(ctx context.Context, deliveryID kernel.UUID, recipientID kernel.UUID) error

	// NotifyDeliveryRequeued tells the recipient their delivery went back
	// to the open pool after a cancellation or release.
	NotifyDeliveryRequeued(ctx context.Context, deliveryID kernel.UUID, recipientID kernel.UUID) error
}
