package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUnreadMessageCountQueryHandler counts unread conversation messages for
// one party of a delivery. Backs the badge clients poll between page loads.
type GetUnreadMessageCountQueryHandler struct {
	db *gorm.DB
}

// NewGetUnreadMessageCountQueryHandler creates a handler for unread count
// queries.
func NewGetUnreadMessageCountQueryHandler(db *gorm.DB) GetUnreadMessageCountQueryHandler {
	return GetUnreadMessageCountQueryHandler{db: db}
}

// Handle executes the count query.
func (h GetUnreadMessageCountQueryHandler) Handle(
	ctx context.Context,
	query GetUnreadMessageCountQuery,
) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM messages
		WHERE delivery_id = ? AND sender_id <> ? AND read_at IS NULL
	`, query.DeliveryID().Bytes(), query.ReaderID().Bytes()).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
