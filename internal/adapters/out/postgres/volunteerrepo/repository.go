package volunteerrepo

import (
	"context"
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/volunteer"
	"communitydelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVolunteerRepository implements ports.VolunteerRepository using GORM.
type GormVolunteerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormVolunteerRepository creates a new GORM volunteer repository.
func NewGormVolunteerRepository(db *gorm.DB, tracker aggregateTracker) *GormVolunteerRepository {
	return &GormVolunteerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new volunteer to the database.
func (r *GormVolunteerRepository) Add(ctx context.Context, aggregate *volunteer.Volunteer) error {
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

// Update saves an existing volunteer to the database. Select("*") persists
// fields cleared to their zero value, e.g. a rejection reason wiped by
// reinstatement.
func (r *GormVolunteerRepository) Update(ctx context.Context, aggregate *volunteer.Volunteer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VolunteerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("volunteer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a volunteer by ID.
func (r *GormVolunteerRepository) Get(ctx context.Context, id kernel.UUID) (*volunteer.Volunteer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VolunteerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("volunteer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves applications awaiting review, oldest first.
func (r *GormVolunteerRepository) GetAllPending(ctx context.Context) ([]*volunteer.Volunteer, error) {
	var dtos []VolunteerDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", volunteer.StatusPending.String()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	volunteers := make([]*volunteer.Volunteer, 0, len(dtos))
	for _, dto := range dtos {
		v, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		volunteers = append(volunteers, v)
	}

	return volunteers, nil
}
