package queries

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
	"communitydelivery/internal/pkg/guard"
)

var ErrGetDeliveryMessagesQueryIsNotConstructed = errors.New(
	"GetDeliveryMessagesQuery must be created via NewGetDeliveryMessagesQuery constructor",
)

// DefaultMessageLimit bounds conversation reads when the caller does not ask
// for a specific page size.
const DefaultMessageLimit = 50

// GetDeliveryMessagesQuery retrieves a delivery's conversation in
// chronological order, bounded by a limit.
type GetDeliveryMessagesQuery struct {
	deliveryID kernel.UUID
	limit      int

	guard guard.ConstructorGuard
}

// NewGetDeliveryMessagesQuery creates a bounded conversation query. A
// non-positive limit falls back to DefaultMessageLimit.
func NewGetDeliveryMessagesQuery(deliveryID kernel.UUID, limit int) (GetDeliveryMessagesQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryMessagesQuery{}, err
	}
	if limit <= 0 {
		limit = DefaultMessageLimit
	}

	return GetDeliveryMessagesQuery{
		deliveryID: deliveryID,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryMessagesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryMessagesQueryIsNotConstructed)
}

// DeliveryID returns the delivery whose conversation is requested.
func (q GetDeliveryMessagesQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// Limit returns the maximum number of messages to read.
func (q GetDeliveryMessagesQuery) Limit() int { return q.limit }

// MessageResponse is one conversation message as exposed to readers.
type MessageResponse struct {
	ID       kernel.UUID
	Sender   message.Sender
	SenderID kernel.UUID
	Content  string
	SentAt   time.Time
	ReadAt   *time.Time
}
