package queries

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrGetUnreadMessageCountQueryIsNotConstructed = errors.New(
	"GetUnreadMessageCountQuery must be created via NewGetUnreadMessageCountQuery constructor",
)

// GetUnreadMessageCountQuery counts the messages on a delivery the reader has
// not acknowledged yet. The reader's own messages never count.
type GetUnreadMessageCountQuery struct {
	deliveryID kernel.UUID
	readerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnreadMessageCountQuery creates an unread count query.
func NewGetUnreadMessageCountQuery(deliveryID, readerID kernel.UUID) (GetUnreadMessageCountQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetUnreadMessageCountQuery{}, err
	}
	if err := readerID.Validate(); err != nil {
		return GetUnreadMessageCountQuery{}, err
	}

	return GetUnreadMessageCountQuery{
		deliveryID: deliveryID,
		readerID:   readerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnreadMessageCountQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadMessageCountQueryIsNotConstructed)
}

// DeliveryID returns the delivery whose conversation is counted.
func (q GetUnreadMessageCountQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// ReaderID returns the party asking for their unread count.
func (q GetUnreadMessageCountQuery) ReaderID() kernel.UUID { return q.readerID }
