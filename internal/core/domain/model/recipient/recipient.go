package recipient

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

// PurgedMarker replaces encrypted contact fields when a recipient's personal
// data is purged. The marker is stored as plaintext so purged rows are
// recognizable without a decryption key.
const PurgedMarker = "[PURGED]"

var (
	// ErrRecipientIsNotConstructed is returned when a Recipient was not
	// created via NewRecipient or RestoreRecipient.
	ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient or RestoreRecipient constructor")

	// ErrRecipientDeleted is returned when an operation targets a recipient
	// whose account has been deleted.
	ErrRecipientDeleted = errors.New("recipient account is deleted")
)

// Recipient is the requester profile aggregate. Contact details (street
// address, phone, delivery notes) are held only as ciphertext produced by the
// PII codec; the aggregate never sees them in the clear. The stored location
// is coarsened before it reaches this type, so the precise home coordinates
// exist nowhere in the system.
type Recipient struct {
	id          kernel.UUID
	displayName string

	// generalArea is the coarse human-readable locality ("South Natomas")
	// shown to volunteers before a claim.
	generalArea string

	addressCiphertext []byte
	phoneCiphertext   []byte
	notesCiphertext   []byte

	// location is the fuzzed coordinate used for matching, or nil when
	// geocoding was unavailable at registration.
	location *kernel.GeoPoint

	createdAt time.Time
	deletedAt *time.Time
	purgedAt  *time.Time

	guard guard.ConstructorGuard
}

// NewRecipient registers a recipient. addressCiphertext must be present;
// phone and notes ciphertexts and the fuzzed location are optional.
func NewRecipient(
	id kernel.UUID,
	displayName string,
	generalArea string,
	addressCiphertext []byte,
	phoneCiphertext []byte,
	notesCiphertext []byte,
	location *kernel.GeoPoint,
	createdAt time.Time,
) (*Recipient, error) {
	r := &Recipient{
		phoneCiphertext: phoneCiphertext,
		notesCiphertext: notesCiphertext,
		createdAt:       createdAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDisplayName(displayName),
		r.setGeneralArea(generalArea),
		r.setAddressCiphertext(addressCiphertext),
		r.setLocation(location),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRecipient reconstructs a recipient from persistence. Purged rows
// carry the marker bytes in place of real ciphertext, so the address
// requirement is not re-checked here.
func RestoreRecipient(
	id kernel.UUID,
	displayName string,
	generalArea string,
	addressCiphertext []byte,
	phoneCiphertext []byte,
	notesCiphertext []byte,
	location *kernel.GeoPoint,
	createdAt time.Time,
	deletedAt *time.Time,
	purgedAt *time.Time,
) (*Recipient, error) {
	r := &Recipient{
		addressCiphertext: addressCiphertext,
		phoneCiphertext:   phoneCiphertext,
		notesCiphertext:   notesCiphertext,
		createdAt:         createdAt,
		deletedAt:         deletedAt,
		purgedAt:          purgedAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDisplayName(displayName),
		r.setGeneralArea(generalArea),
		r.setLocation(location),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the recipient was built through a constructor.
func (r *Recipient) Validate() error {
	if r == nil {
		return ErrRecipientIsNotConstructed
	}
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// IsEqual compares recipients by identity.
func (r *Recipient) IsEqual(other *Recipient) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the recipient's unique identifier.
func (r *Recipient) ID() kernel.UUID { return r.id }

// DisplayName returns the name shown to volunteers.
func (r *Recipient) DisplayName() string { return r.displayName }

// GeneralArea returns the coarse locality label.
func (r *Recipient) GeneralArea() string { return r.generalArea }

// AddressCiphertext returns the encrypted street address.
func (r *Recipient) AddressCiphertext() []byte { return r.addressCiphertext }

// PhoneCiphertext returns the encrypted phone number, or nil.
func (r *Recipient) PhoneCiphertext() []byte { return r.phoneCiphertext }

// NotesCiphertext returns the encrypted delivery notes, or nil.
func (r *Recipient) NotesCiphertext() []byte { return r.notesCiphertext }

// Location returns the fuzzed coordinate, or nil when geocoding failed.
func (r *Recipient) Location() *kernel.GeoPoint { return r.location }

// CreatedAt returns the registration timestamp.
func (r *Recipient) CreatedAt() time.Time { return r.createdAt }

// DeletedAt returns when the account was deleted, if ever.
func (r *Recipient) DeletedAt() *time.Time { return r.deletedAt }

// PurgedAt returns when personal data was purged, if ever.
func (r *Recipient) PurgedAt() *time.Time { return r.purgedAt }

// IsDeleted reports whether the account has been deleted.
func (r *Recipient) IsDeleted() bool { return r.deletedAt != nil }

// IsPurged reports whether contact details have been replaced by the marker.
func (r *Recipient) IsPurged() bool { return r.purgedAt != nil }

// Delete soft-deletes the account. Deletion does not remove the row: the
// identifier must stay resolvable for the audit trail.
func (r *Recipient) Delete(at time.Time) error {
	if r.IsDeleted() {
		return ErrRecipientDeleted
	}
	r.deletedAt = &at
	return nil
}

// Purge irreversibly replaces all contact ciphertext with the purged marker
// and drops the stored location. The display name, general area, and audit
// references survive.
func (r *Recipient) Purge(at time.Time) {
	if r.IsPurged() {
		return
	}
	r.addressCiphertext = []byte(PurgedMarker)
	if r.phoneCiphertext != nil {
		r.phoneCiphertext = []byte(PurgedMarker)
	}
	if r.notesCiphertext != nil {
		r.notesCiphertext = []byte(PurgedMarker)
	}
	r.location = nil
	r.purgedAt = &at
}

func (r *Recipient) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Recipient) setDisplayName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	r.displayName = name
	return nil
}

func (r *Recipient) setGeneralArea(area string) error {
	if area == "" {
		return errs.NewValueIsRequiredError("generalArea")
	}
	r.generalArea = area
	return nil
}

func (r *Recipient) setAddressCiphertext(ciphertext []byte) error {
	if len(ciphertext) == 0 {
		return errs.NewValueIsRequiredError("addressCiphertext")
	}
	r.addressCiphertext = ciphertext
	return nil
}

func (r *Recipient) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		r.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("location", err)
	}
	r.location = location
	return nil
}
