// Package recipientrepo persists the recipient aggregate. Contact fields
// arrive as ciphertext; this package never sees plaintext PII.
package recipientrepo

import (
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/recipient"

	"github.com/google/uuid"
)

// RecipientDTO is the database row for a recipient. The lat/lng pair holds
// the fuzzed matching coordinate, never the precise home location.
type RecipientDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName       string    `gorm:"not null"`
	GeneralArea       string    `gorm:"not null"`
	AddressCiphertext []byte    `gorm:"not null"`
	PhoneCiphertext   []byte
	NotesCiphertext   []byte
	Lat               *float64
	Lng               *float64
	CreatedAt         time.Time
	DeletedAt         *time.Time `gorm:"index"`
	PurgedAt          *time.Time
}

// TableName overrides GORM's default naming to use "recipients".
func (RecipientDTO) TableName() string {
	return "recipients"
}

func fromDomain(aggregate *recipient.Recipient) RecipientDTO {
	var lat, lng *float64
	if location := aggregate.Location(); location != nil {
		la, ln := location.Latitude(), location.Longitude()
		lat, lng = &la, &ln
	}

	return RecipientDTO{
		ID:                aggregate.ID().Bytes(),
		DisplayName:       aggregate.DisplayName(),
		GeneralArea:       aggregate.GeneralArea(),
		AddressCiphertext: aggregate.AddressCiphertext(),
		PhoneCiphertext:   aggregate.PhoneCiphertext(),
		NotesCiphertext:   aggregate.NotesCiphertext(),
		Lat:               lat,
		Lng:               lng,
		CreatedAt:         aggregate.CreatedAt(),
		DeletedAt:         aggregate.DeletedAt(),
		PurgedAt:          aggregate.PurgedAt(),
	}
}

func toDomain(dto RecipientDTO) (*recipient.Recipient, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	return recipient.RestoreRecipient(
		id,
		dto.DisplayName,
		dto.GeneralArea,
		dto.AddressCiphertext,
		dto.PhoneCiphertext,
		dto.NotesCiphertext,
		location,
		dto.CreatedAt,
		dto.DeletedAt,
		dto.PurgedAt,
	)
}
