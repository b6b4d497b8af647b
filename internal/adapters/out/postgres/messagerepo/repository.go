package messagerepo

import (
	"context"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"

	"gorm.io/gorm"
)

// GormMessageRepository implements ports.MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Add persists a new message.
func (r *GormMessageRepository) Add(ctx context.Context, aggregate *message.Message) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetForDelivery retrieves the delivery's messages, oldest first.
func (r *GormMessageRepository) GetForDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
	limit int,
) ([]*message.Message, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("sent_at ASC, id ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var dtos []MessageDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*message.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// CountUnreadFor counts messages on the delivery the reader has not seen.
// The reader's own messages are excluded.
func (r *GormMessageRepository) CountUnreadFor(
	ctx context.Context,
	deliveryID kernel.UUID,
	readerID kernel.UUID,
) (int, error) {
	if err := deliveryID.Validate(); err != nil {
		return 0, err
	}
	if err := readerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("delivery_id = ? AND sender_id <> ? AND read_at IS NULL",
			deliveryID.Bytes(), readerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// MarkAllRead stamps every unread message the reader did not write.
func (r *GormMessageRepository) MarkAllRead(
	ctx context.Context,
	deliveryID kernel.UUID,
	readerID kernel.UUID,
	at time.Time,
) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	if err := readerID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("delivery_id = ? AND sender_id <> ? AND read_at IS NULL",
			deliveryID.Bytes(), readerID.Bytes()).
		Update("read_at", at).Error
}
