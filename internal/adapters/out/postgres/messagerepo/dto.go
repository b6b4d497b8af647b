// Package messagerepo persists delivery messages. Rows are append-mostly:
// after insert only the read_at column changes, via the bulk read marker.
package messagerepo

import (
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"

	"github.com/google/uuid"
)

// MessageDTO is the database row for a message.
type MessageDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index;not null"`
	Sender     string    `gorm:"not null"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null"`
	Content    string    `gorm:"not null"`
	SentAt     time.Time `gorm:"index"`
	ReadAt     *time.Time
}

// TableName overrides GORM's default naming to use "messages".
func (MessageDTO) TableName() string {
	return "messages"
}

func fromDomain(aggregate *message.Message) MessageDTO {
	return MessageDTO{
		ID:         aggregate.ID().Bytes(),
		DeliveryID: aggregate.DeliveryID().Bytes(),
		Sender:     aggregate.Sender().String(),
		SenderID:   aggregate.SenderID().Bytes(),
		Content:    aggregate.Content(),
		SentAt:     aggregate.SentAt(),
		ReadAt:     aggregate.ReadAt(),
	}
}

func toDomain(dto MessageDTO) (*message.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	sender, err := message.SenderFromString(dto.Sender)
	if err != nil {
		return nil, err
	}

	return message.RestoreMessage(
		id,
		deliveryID,
		sender,
		senderID,
		dto.Content,
		dto.SentAt,
		dto.ReadAt,
	)
}
