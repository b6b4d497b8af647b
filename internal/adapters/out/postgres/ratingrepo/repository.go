package ratingrepo

import (
	"context"
	"database/sql"
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/rating"
	"communitydelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRatingRepository implements ports.RatingRepository using GORM.
type GormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository creates a new GORM rating repository.
func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// Add persists a new rating. The unique index on delivery_id rejects a
// second rating for the same delivery even under concurrent submissions.
func (r *GormRatingRepository) Add(ctx context.Context, aggregate *rating.Rating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetForDelivery retrieves the delivery's rating.
func (r *GormRatingRepository) GetForDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) (*rating.Rating, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dto RatingDTO
	if err := r.db.WithContext(ctx).First(&dto, "delivery_id = ?", deliveryID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rating", deliveryID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AverageForVolunteer computes the mean score across the volunteer's ratings.
// ok is false when no ratings exist yet.
func (r *GormRatingRepository) AverageForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) (decimal.Decimal, bool, error) {
	if err := volunteerID.Validate(); err != nil {
		return decimal.Decimal{}, false, err
	}

	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&RatingDTO{}).
		Select("AVG(score)").
		Where("volunteer_id = ?", volunteerID.Bytes()).
		Scan(&avg).Error
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if !avg.Valid {
		return decimal.Decimal{}, false, nil
	}

	return decimal.NewFromFloat(avg.Float64).Round(2), true, nil
}
