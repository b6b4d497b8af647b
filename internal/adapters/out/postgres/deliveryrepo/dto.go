// Package deliveryrepo persists the delivery aggregate. It maps the domain
// model to the deliveries table and implements the conditional claim write
// that makes at-most-one-claimant hold under concurrency.
package deliveryrepo

import (
	"time"

	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the database row for a delivery. Status and canceled_by are
// stored as their snake_case strings so the table reads the same way the
// audit trail does.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	VolunteerID        *uuid.UUID `gorm:"type:uuid;index"`
	StoreName          string     `gorm:"not null"`
	PickupAddress      string     `gorm:"not null"`
	StoreLat           *float64
	StoreLng           *float64
	OrderName          string `gorm:"not null"`
	PickupTime         time.Time
	EstimatedItems     string
	Status             string `gorm:"index;not null"`
	Priority           int    `gorm:"not null;default:0"`
	CreatedAt          time.Time
	ClaimedAt          *time.Time
	PickedUpAt         *time.Time
	CompletedAt        *time.Time
	CanceledAt         *time.Time
	CanceledBy         string
	CancellationReason string
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var volunteerID *uuid.UUID
	if id := aggregate.VolunteerID(); id != nil {
		raw := id.Bytes()
		volunteerID = &raw
	}

	var storeLat, storeLng *float64
	if location := aggregate.StoreLocation(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		storeLat, storeLng = &lat, &lng
	}

	return DeliveryDTO{
		ID:                 aggregate.ID().Bytes(),
		RecipientID:        aggregate.RecipientID().Bytes(),
		VolunteerID:        volunteerID,
		StoreName:          aggregate.StoreName(),
		PickupAddress:      aggregate.PickupAddress(),
		StoreLat:           storeLat,
		StoreLng:           storeLng,
		OrderName:          aggregate.OrderName(),
		PickupTime:         aggregate.PickupTime(),
		EstimatedItems:     aggregate.EstimatedItems(),
		Status:             aggregate.Status().String(),
		Priority:           aggregate.Priority(),
		CreatedAt:          aggregate.CreatedAt(),
		ClaimedAt:          aggregate.ClaimedAt(),
		PickedUpAt:         aggregate.PickedUpAt(),
		CompletedAt:        aggregate.CompletedAt(),
		CanceledAt:         aggregate.CanceledAt(),
		CanceledBy:         aggregate.CanceledBy().String(),
		CancellationReason: aggregate.CancellationReason(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var volunteerID *kernel.UUID
	if dto.VolunteerID != nil {
		vID, volErr := kernel.UUIDFromBytes((*dto.VolunteerID)[:])
		if volErr != nil {
			return nil, volErr
		}
		volunteerID = &vID
	}

	var storeLocation *kernel.GeoPoint
	if dto.StoreLat != nil && dto.StoreLng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.StoreLat, *dto.StoreLng)
		if locErr != nil {
			return nil, locErr
		}
		storeLocation = &point
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	canceledBy, err := delivery.ActorFromString(dto.CanceledBy)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		recipientID,
		volunteerID,
		dto.StoreName,
		dto.PickupAddress,
		storeLocation,
		dto.OrderName,
		dto.PickupTime,
		dto.EstimatedItems,
		status,
		dto.Priority,
		dto.CreatedAt,
		dto.ClaimedAt,
		dto.PickedUpAt,
		dto.CompletedAt,
		dto.CanceledAt,
		canceledBy,
		dto.CancellationReason,
	)
}
