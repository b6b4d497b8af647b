// Package volunteerrepo persists the volunteer aggregate, including vetting
// state and the derived rating average.
package volunteerrepo

import (
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/volunteer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VolunteerDTO is the database row for a volunteer.
type VolunteerDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName           string    `gorm:"not null"`
	ServiceArea        string    `gorm:"not null"`
	ServiceLat         *float64
	ServiceLng         *float64
	ServiceRadiusMiles float64
	AvailabilityNotes  string
	Status             string     `gorm:"index;not null"`
	ReviewedBy         *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt         *time.Time
	RejectionReason    string
	SuspensionReason   string
	TotalDeliveries    int                 `gorm:"not null;default:0"`
	AverageRating      decimal.NullDecimal `gorm:"type:numeric(3,2)"`
	CreatedAt          time.Time
}

// TableName overrides GORM's default naming to use "volunteers".
func (VolunteerDTO) TableName() string {
	return "volunteers"
}

func fromDomain(aggregate *volunteer.Volunteer) VolunteerDTO {
	var serviceLat, serviceLng *float64
	if location := aggregate.ServiceLocation(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		serviceLat, serviceLng = &lat, &lng
	}

	var reviewedBy *uuid.UUID
	if id := aggregate.ReviewedBy(); id != nil {
		raw := id.Bytes()
		reviewedBy = &raw
	}

	return VolunteerDTO{
		ID:                 aggregate.ID().Bytes(),
		FullName:           aggregate.FullName(),
		ServiceArea:        aggregate.ServiceArea(),
		ServiceLat:         serviceLat,
		ServiceLng:         serviceLng,
		ServiceRadiusMiles: aggregate.ServiceRadiusMiles(),
		AvailabilityNotes:  aggregate.AvailabilityNotes(),
		Status:             aggregate.Status().String(),
		ReviewedBy:         reviewedBy,
		ReviewedAt:         aggregate.ReviewedAt(),
		RejectionReason:    aggregate.RejectionReason(),
		SuspensionReason:   aggregate.SuspensionReason(),
		TotalDeliveries:    aggregate.TotalDeliveries(),
		AverageRating:      aggregate.AverageRating(),
		CreatedAt:          aggregate.CreatedAt(),
	}
}

func toDomain(dto VolunteerDTO) (*volunteer.Volunteer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var serviceLocation *kernel.GeoPoint
	if dto.ServiceLat != nil && dto.ServiceLng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.ServiceLat, *dto.ServiceLng)
		if locErr != nil {
			return nil, locErr
		}
		serviceLocation = &point
	}

	status, err := volunteer.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var reviewedBy *kernel.UUID
	if dto.ReviewedBy != nil {
		rID, revErr := kernel.UUIDFromBytes((*dto.ReviewedBy)[:])
		if revErr != nil {
			return nil, revErr
		}
		reviewedBy = &rID
	}

	return volunteer.RestoreVolunteer(
		id,
		dto.FullName,
		dto.ServiceArea,
		serviceLocation,
		dto.ServiceRadiusMiles,
		dto.AvailabilityNotes,
		status,
		reviewedBy,
		dto.ReviewedAt,
		dto.RejectionReason,
		dto.SuspensionReason,
		dto.TotalDeliveries,
		dto.AverageRating,
		dto.CreatedAt,
	)
}
