// Package ratingrepo persists delivery ratings. The unique index on
// delivery_id is the database-level backstop for the one-rating-per-delivery
// rule.
package ratingrepo

import (
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// RatingDTO is the database row for a rating.
type RatingDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	VolunteerID uuid.UUID `gorm:"type:uuid;index;not null"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null"`
	Score       int       `gorm:"not null"`
	Comment     string
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming to use "ratings".
func (RatingDTO) TableName() string {
	return "ratings"
}

func fromDomain(aggregate *rating.Rating) RatingDTO {
	return RatingDTO{
		ID:          aggregate.ID().Bytes(),
		DeliveryID:  aggregate.DeliveryID().Bytes(),
		VolunteerID: aggregate.VolunteerID().Bytes(),
		RecipientID: aggregate.RecipientID().Bytes(),
		Score:       aggregate.Score(),
		Comment:     aggregate.Comment(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func toDomain(dto RatingDTO) (*rating.Rating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	volunteerID, err := kernel.UUIDFromBytes(dto.VolunteerID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	return rating.RestoreRating(
		id,
		deliveryID,
		volunteerID,
		recipientID,
		dto.Score,
		dto.Comment,
		dto.CreatedAt,
	)
}
