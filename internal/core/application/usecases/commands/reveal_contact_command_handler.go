package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/ports"
	"communitydelivery/internal/pkg/errs"
)

// RecipientContact is the decrypted contact payload returned to the assigned
// volunteer. It is never persisted.
type RecipientContact struct {
	DisplayName string
	Address     string
	Phone       string
	Notes       string
}

// RevealContactCommandHandler handles contact disclosure. Only the volunteer
// currently holding the claim sees the decrypted address, and every
// disclosure leaves an address_accessed entry in the audit trail. Disclosure
// is modeled as a command rather than a query because of that write.
type RevealContactCommandHandler struct {
	uowFactory ContactUoWFactory
	codec      ports.PIICodec
}

// NewRevealContactCommandHandler creates a handler for contact disclosure.
func NewRevealContactCommandHandler(
	uowFactory ContactUoWFactory,
	codec ports.PIICodec,
) RevealContactCommandHandler {
	return RevealContactCommandHandler{
		uowFactory: uowFactory,
		codec:      codec,
	}
}

// Handle processes the disclosure command. Returns delivery.ErrNotAssigned
// when the caller does not hold the claim.
func (h RevealContactCommandHandler) Handle(
	ctx context.Context,
	cmd RevealContactCommand,
) (RecipientContact, error) {
	if err := cmd.Validate(); err != nil {
		return RecipientContact{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecipientContact{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return RecipientContact{}, ErrDeliveryNotFound
	}
	if err != nil {
		return RecipientContact{}, err
	}

	assignee := target.VolunteerID()
	if assignee == nil || !assignee.IsEqual(cmd.VolunteerID()) {
		return RecipientContact{}, delivery.ErrNotAssigned
	}

	account, err := uow.RecipientRepository().Get(ctx, target.RecipientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return RecipientContact{}, ErrRecipientNotFound
	}
	if err != nil {
		return RecipientContact{}, err
	}

	contact := RecipientContact{DisplayName: account.DisplayName()}
	if contact.Address, err = h.codec.Decrypt(account.AddressCiphertext()); err != nil {
		return RecipientContact{}, err
	}
	if ct := account.PhoneCiphertext(); ct != nil {
		if contact.Phone, err = h.codec.Decrypt(ct); err != nil {
			return RecipientContact{}, err
		}
	}
	if ct := account.NotesCiphertext(); ct != nil {
		if contact.Notes, err = h.codec.Decrypt(ct); err != nil {
			return RecipientContact{}, err
		}
	}

	now := time.Now().UTC()
	deliveryID := cmd.DeliveryID()
	recipientID := target.RecipientID()
	volunteerID := cmd.VolunteerID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionAddressAccessed,
		&deliveryID, &recipientID, &volunteerID, nil,
		nil,
		cmd.IPAddress(),
		now,
	)
	if err != nil {
		return RecipientContact{}, err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return RecipientContact{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecipientContact{}, err
	}

	return contact, nil
}
