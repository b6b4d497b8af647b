package queries

import (
	"context"
	"database/sql"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryMessagesQueryHandler reads a delivery's conversation from the
// database, oldest message first. Reading is side-effect free; clients
// acknowledge messages through the explicit read command.
type GetDeliveryMessagesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryMessagesQueryHandler creates a handler for conversation
// queries.
func NewGetDeliveryMessagesQueryHandler(db *gorm.DB) GetDeliveryMessagesQueryHandler {
	return GetDeliveryMessagesQueryHandler{db: db}
}

// Handle executes the conversation query. An unknown delivery yields an empty
// slice.
func (h GetDeliveryMessagesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryMessagesQuery,
) ([]MessageResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, sender, sender_id, content, sent_at, read_at
		FROM messages
		WHERE delivery_id = ?
		ORDER BY sent_at ASC, id ASC
		LIMIT ?
	`, query.DeliveryID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]MessageResponse, 0)
	for rows.Next() {
		var (
			id, senderID uuid.UUID
			senderStr    string
			readAt       sql.NullTime
			resp         MessageResponse
		)

		err = rows.Scan(&id, &senderStr, &senderID, &resp.Content, &resp.SentAt, &readAt)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SenderID, err = kernel.UUIDFromBytes(senderID[:]); err != nil {
			return nil, err
		}
		if resp.Sender, err = message.SenderFromString(senderStr); err != nil {
			return nil, err
		}
		if readAt.Valid {
			at := readAt.Time
			resp.ReadAt = &at
		}

		messages = append(messages, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
