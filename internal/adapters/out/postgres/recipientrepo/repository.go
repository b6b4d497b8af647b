package recipientrepo

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/recipient"
	"communitydelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRecipientRepository implements ports.RecipientRepository using GORM.
type GormRecipientRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRecipientRepository creates a new GORM recipient repository.
func NewGormRecipientRepository(db *gorm.DB, tracker aggregateTracker) *GormRecipientRepository {
	return &GormRecipientRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new recipient to the database.
func (r *GormRecipientRepository) Add(ctx context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing recipient to the database. Select("*") persists
// the nulled ciphertext columns a purge leaves behind.
func (r *GormRecipientRepository) Update(ctx context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RecipientDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("recipient", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a recipient by ID. Soft-deleted rows are returned: audit and
// delivery history still reference them.
func (r *GormRecipientRepository) Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecipientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("recipient", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInactiveSince retrieves unpurged recipients with no activity after
// the cutoff: either soft-deleted before it, or registered before it with no
// delivery created since. These are the retention sweep's candidates.
func (r *GormRecipientRepository) GetAllInactiveSince(
	ctx context.Context,
	cutoff time.Time,
) ([]*recipient.Recipient, error) {
	var dtos []RecipientDTO
	err := r.db.WithContext(ctx).
		Where(`purged_at IS NULL
			AND COALESCE(deleted_at, created_at) < ?
			AND NOT EXISTS (
				SELECT 1 FROM deliveries d
				WHERE d.recipient_id = recipients.id AND d.created_at >= ?
			)`, cutoff, cutoff).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	recipients := make([]*recipient.Recipient, 0, len(dtos))
	for _, dto := range dtos {
		account, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		recipients = append(recipients, account)
	}

	return recipients, nil
}
