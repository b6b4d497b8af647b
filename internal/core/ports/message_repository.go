package ports

import (
	"context"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
)

// MessageRepository defines the persistence contract for delivery messages.
type MessageRepository interface {
	// Add persists a new message.
	Add(ctx context.Context, aggregate *message.Message) error

	// GetForDelivery retrieves the delivery's messages, oldest first. A
	// positive limit caps the result.
	GetForDelivery(ctx context.Context, deliveryID kernel.UUID, limit int) ([]*message.Message, error)

	// CountUnreadFor counts the delivery's messages the reader has not seen
	// yet. The reader's own messages never count as unread.
	CountUnreadFor(ctx context.Context, deliveryID kernel.UUID, readerID kernel.UUID) (int, error)

	// MarkAllRead stamps every unread message on the delivery that the
	// reader did not write themselves.
	MarkAllRead(ctx context.Context, deliveryID kernel.UUID, readerID kernel.UUID, at time.Time) error
}
