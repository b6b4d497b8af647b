package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
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

// Update saves an existing delivery to the database. The full row is written:
// Select("*") forces GORM to persist fields cleared back to their zero value,
// which status transitions do constantly (dropped assignments, cleared
// timestamps).
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClaimIfOpen atomically assigns the delivery to the volunteer if and only if
// it is still open. The single conditional UPDATE is what arbitrates
// concurrent claims: exactly one competitor sees a row affected, everyone
// else gets false with a nil error.
func (r *GormDeliveryRepository) ClaimIfOpen(
	ctx context.Context,
	id kernel.UUID,
	volunteerID kernel.UUID,
	at time.Time,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}
	if err := volunteerID.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), delivery.StatusOpen.String()).
		Updates(map[string]any{
			"status":       delivery.StatusClaimed.String(),
			"volunteer_id": volunteerID.Bytes(),
			"claimed_at":   at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// GetAllOpen retrieves the open pool ordered by priority DESC then age.
func (r *GormDeliveryRepository) GetAllOpen(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", delivery.StatusOpen.String()).
		Order("priority DESC, created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetActiveForVolunteer retrieves the deliveries a volunteer currently holds.
func (r *GormDeliveryRepository) GetActiveForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := volunteerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("volunteer_id = ? AND status IN ?", volunteerID.Bytes(), activeAssignedStatuses()).
		Order("claimed_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountActiveForVolunteer counts the deliveries a volunteer currently holds.
// The capacity ceiling is enforced against this derived count, never against
// a stored counter.
func (r *GormDeliveryRepository) CountActiveForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) (int, error) {
	if err := volunteerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("volunteer_id = ? AND status IN ?", volunteerID.Bytes(), activeAssignedStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetActiveForRecipient retrieves a recipient's in-flight deliveries,
// including unclaimed open ones.
func (r *GormDeliveryRepository) GetActiveForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}

	statuses := []string{
		delivery.StatusOpen.String(),
		delivery.StatusClaimed.String(),
		delivery.StatusPickedUp.String(),
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status IN ?", recipientID.Bytes(), statuses).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func activeAssignedStatuses() []string {
	return []string{
		delivery.StatusClaimed.String(),
		delivery.StatusPickedUp.String(),
	}
}

func toDomainSlice(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}
