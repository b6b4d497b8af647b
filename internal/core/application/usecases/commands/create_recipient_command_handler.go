package commands

import (
	"context"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/recipient"
	"communitydelivery/internal/core/domain/services"
	"communitydelivery/internal/core/ports"
)

// CreateRecipientCommandHandler handles recipient registration. Contact
// fields are encrypted before persistence; the home address is geocoded,
// checked against the operating boundary, and only a coordinate rounded to
// two decimal places (roughly 0.7 mile of slack) is stored for matching.
type CreateRecipientCommandHandler struct {
	uowFactory  RecipientUoWFactory
	codec       ports.PIICodec
	geocoder    ports.Geocoder
	serviceArea services.ServiceArea
}

// NewCreateRecipientCommandHandler creates a handler for recipient
// registration.
func NewCreateRecipientCommandHandler(
	uowFactory RecipientUoWFactory,
	codec ports.PIICodec,
	geocoder ports.Geocoder,
	serviceArea services.ServiceArea,
) CreateRecipientCommandHandler {
	return CreateRecipientCommandHandler{
		uowFactory:  uowFactory,
		codec:       codec,
		geocoder:    geocoder,
		serviceArea: serviceArea,
	}
}

// Handle processes the registration command. Returns
// ErrOutsideOperatingArea when the home address geocodes outside the
// community boundary and ports.ErrExternalLookupFailed when the address
// cannot be resolved at all.
func (h CreateRecipientCommandHandler) Handle(ctx context.Context, cmd CreateRecipientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.resolveLocation(ctx, cmd.Address())
	if err != nil {
		return err
	}

	addressCiphertext, err := h.codec.Encrypt(cmd.Address())
	if err != nil {
		return err
	}

	var phoneCiphertext, notesCiphertext []byte
	if cmd.Phone() != "" {
		if phoneCiphertext, err = h.codec.Encrypt(cmd.Phone()); err != nil {
			return err
		}
	}
	if cmd.Notes() != "" {
		if notesCiphertext, err = h.codec.Encrypt(cmd.Notes()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	newRecipient, err := recipient.NewRecipient(
		cmd.RecipientID(),
		cmd.DisplayName(),
		cmd.GeneralArea(),
		addressCiphertext,
		phoneCiphertext,
		notesCiphertext,
		location,
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.RecipientRepository().Add(ctx, newRecipient); err != nil {
		return err
	}

	recipientID := cmd.RecipientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionRecipientRegistered,
		nil, &recipientID, nil, nil,
		map[string]any{"general_area": cmd.GeneralArea()},
		cmd.IPAddress(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveLocation geocodes the home address, verifies the boundary, and
// coarsens the result. The precise coordinate never leaves this function; a
// failed lookup fails the registration so the applicant can fix the address
// or retry.
func (h CreateRecipientCommandHandler) resolveLocation(
	ctx context.Context,
	address string,
) (*kernel.GeoPoint, error) {
	precise, err := h.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	inside, err := h.serviceArea.Contains(precise)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, ErrOutsideOperatingArea
	}

	fuzzed, err := precise.Fuzzed(kernel.DefaultFuzzPrecision)
	if err != nil {
		return nil, err
	}

	return &fuzzed, nil
}
