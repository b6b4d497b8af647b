// Package auditrepo persists the append-only audit trail. Entries are only
// ever inserted; there is no update or delete path, and the retention purge
// deliberately leaves this table alone.
package auditrepo

import (
	"encoding/json"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO is the database row for an audit entry. Details is a JSONB
// document; party references are nullable and at least one is always set.
type EntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Action      string     `gorm:"index;not null"`
	DeliveryID  *uuid.UUID `gorm:"type:uuid;index"`
	RecipientID *uuid.UUID `gorm:"type:uuid;index"`
	VolunteerID *uuid.UUID `gorm:"type:uuid;index"`
	AdminID     *uuid.UUID `gorm:"type:uuid"`
	Details     []byte     `gorm:"type:jsonb"`
	IPAddress   string
	OccurredAt  time.Time `gorm:"index;not null"`
}

// TableName overrides GORM's default naming to use "audit_entries".
func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry *audit.Entry) (EntryDTO, error) {
	var details []byte
	if entry.Details() != nil {
		marshaled, err := json.Marshal(entry.Details())
		if err != nil {
			return EntryDTO{}, err
		}
		details = marshaled
	}

	return EntryDTO{
		ID:          entry.ID().Bytes(),
		Action:      entry.Action().String(),
		DeliveryID:  optionalBytes(entry.DeliveryID()),
		RecipientID: optionalBytes(entry.RecipientID()),
		VolunteerID: optionalBytes(entry.VolunteerID()),
		AdminID:     optionalBytes(entry.AdminID()),
		Details:     details,
		IPAddress:   entry.IPAddress(),
		OccurredAt:  entry.OccurredAt(),
	}, nil
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	action, err := audit.ActionFromString(dto.Action)
	if err != nil {
		return nil, err
	}

	deliveryID, err := optionalUUID(dto.DeliveryID)
	if err != nil {
		return nil, err
	}
	recipientID, err := optionalUUID(dto.RecipientID)
	if err != nil {
		return nil, err
	}
	volunteerID, err := optionalUUID(dto.VolunteerID)
	if err != nil {
		return nil, err
	}
	adminID, err := optionalUUID(dto.AdminID)
	if err != nil {
		return nil, err
	}

	var details map[string]any
	if len(dto.Details) > 0 {
		if err = json.Unmarshal(dto.Details, &details); err != nil {
			return nil, err
		}
	}

	return audit.RestoreEntry(
		id,
		action,
		deliveryID,
		recipientID,
		volunteerID,
		adminID,
		details,
		dto.IPAddress,
		dto.OccurredAt,
	)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
