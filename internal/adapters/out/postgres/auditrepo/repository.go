package auditrepo

import (
	"context"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists a new audit entry. Insert only; rows are never touched
// again once written.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetForDelivery retrieves every entry referencing the delivery in
// chronological order. The id tiebreak keeps same-instant entries stable.
func (r *GormAuditRepository) GetForDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]*audit.Entry, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("occurred_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetForVolunteer retrieves the most recent entries referencing the
// volunteer, newest first.
func (r *GormAuditRepository) GetForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
	limit int,
) ([]*audit.Entry, error) {
	return r.getForParty(ctx, "volunteer_id", volunteerID, limit)
}

// GetForRecipient retrieves the most recent entries referencing the
// recipient, newest first.
func (r *GormAuditRepository) GetForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
	limit int,
) ([]*audit.Entry, error) {
	return r.getForParty(ctx, "recipient_id", recipientID, limit)
}

func (r *GormAuditRepository) getForParty(
	ctx context.Context,
	column string,
	partyID kernel.UUID,
	limit int,
) ([]*audit.Entry, error) {
	if err := partyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where(column+" = ?", partyID.Bytes()).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountCompletedForVolunteer counts delivery_completed entries for the
// volunteer. Completed deliveries drop their assignment, so the trail is the
// durable record of who fulfilled what.
func (r *GormAuditRepository) CountCompletedForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) (int, error) {
	if err := volunteerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("action = ? AND volunteer_id = ?",
			audit.ActionDeliveryCompleted.String(), volunteerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func toDomainSlice(dtos []EntryDTO) ([]*audit.Entry, error) {
	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
