package ports

import (
	"context"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/rating"

	"github.com/shopspring/decimal"
)

// RatingRepository defines the persistence contract for delivery ratings.
type RatingRepository interface {
	// Add persists a new rating. Fails when the delivery is already rated;
	// the table carries a unique constraint on the delivery reference.
	Add(ctx context.Context, aggregate *rating.Rating) error

	// GetForDelivery retrieves the delivery's rating, or an
	// ObjectNotFoundError when none was submitted.
	GetForDelivery(ctx context.Context, deliveryID kernel.UUID) (*rating.Rating, error)

	// AverageForVolunteer computes the mean score across the volunteer's
	// ratings. ok is false when the volunteer has no ratings yet.
	AverageForVolunteer(ctx context.Context, volunteerID kernel.UUID) (avg decimal.Decimal, ok bool, err error)
}
