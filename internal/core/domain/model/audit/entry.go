package audit

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created via
// NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// Entry is one immutable record in the audit trail. It has no mutators: once
// written, entries are only ever read, and the persistence layer exposes no
// update or delete path for them.
//
// Party references are optional pointers so one entry can link whichever of
// delivery, recipient, volunteer, and admin took part. Details carries
// action-specific context (prior status, cancellation reason, priority boost)
// and must never contain contact details in the clear.
type Entry struct {
	id     kernel.UUID
	action Action

	deliveryID  *kernel.UUID
	recipientID *kernel.UUID
	volunteerID *kernel.UUID
	adminID     *kernel.UUID

	details   map[string]any
	ipAddress string
	occurred  time.Time

	guard guard.ConstructorGuard
}

// NewEntry records an action. At least one party reference must be set; an
// entry that points at nothing is unattributable and therefore invalid.
func NewEntry(
	id kernel.UUID,
	action Action,
	deliveryID *kernel.UUID,
	recipientID *kernel.UUID,
	volunteerID *kernel.UUID,
	adminID *kernel.UUID,
	details map[string]any,
	ipAddress string,
	occurred time.Time,
) (*Entry, error) {
	e := &Entry{
		details:   details,
		ipAddress: ipAddress,
		occurred:  occurred,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setAction(action),
		e.setParties(deliveryID, recipientID, volunteerID, adminID),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	action Action,
	deliveryID *kernel.UUID,
	recipientID *kernel.UUID,
	volunteerID *kernel.UUID,
	adminID *kernel.UUID,
	details map[string]any,
	ipAddress string,
	occurred time.Time,
) (*Entry, error) {
	return NewEntry(id, action, deliveryID, recipientID, volunteerID, adminID,
		details, ipAddress, occurred)
}

// Validate ensures the entry was built through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// IsEqual compares entries by identity.
func (e *Entry) IsEqual(other *Entry) bool {
	return other != nil && e.id.IsEqual(other.id)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// Action returns what the entry records.
func (e *Entry) Action() Action { return e.action }

// DeliveryID returns the referenced delivery, if any.
func (e *Entry) DeliveryID() *kernel.UUID { return e.deliveryID }

// RecipientID returns the referenced recipient, if any.
func (e *Entry) RecipientID() *kernel.UUID { return e.recipientID }

// VolunteerID returns the referenced volunteer, if any.
func (e *Entry) VolunteerID() *kernel.UUID { return e.volunteerID }

// AdminID returns the acting admin, if any.
func (e *Entry) AdminID() *kernel.UUID { return e.adminID }

// Details returns the action-specific context map, possibly nil.
func (e *Entry) Details() map[string]any { return e.details }

// IPAddress returns the request origin, or empty for system actions.
func (e *Entry) IPAddress() string { return e.ipAddress }

// OccurredAt returns when the action happened.
func (e *Entry) OccurredAt() time.Time { return e.occurred }

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setAction(action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	e.action = action
	return nil
}

func (e *Entry) setParties(deliveryID, recipientID, volunteerID, adminID *kernel.UUID) error {
	if deliveryID == nil && recipientID == nil && volunteerID == nil && adminID == nil {
		return errs.NewValueIsRequiredError("party reference")
	}
	for _, ref := range []*kernel.UUID{deliveryID, recipientID, volunteerID, adminID} {
		if ref == nil {
			continue
		}
		if err := ref.Validate(); err != nil {
			return err
		}
	}
	e.deliveryID = deliveryID
	e.recipientID = recipientID
	e.volunteerID = volunteerID
	e.adminID = adminID
	return nil
}
