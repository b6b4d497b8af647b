package commands

import (
	"context"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
)

// PurgeInactiveRecipientsCommandHandler handles the scheduled retention
// sweep. Contact ciphertext is replaced with the purge marker and the stored
// location dropped; the audit trail records the purge but is itself never
// purged.
type PurgeInactiveRecipientsCommandHandler struct {
	uowFactory RecipientUoWFactory
}

// NewPurgeInactiveRecipientsCommandHandler creates a handler for the
// retention sweep.
func NewPurgeInactiveRecipientsCommandHandler(
	uowFactory RecipientUoWFactory,
) PurgeInactiveRecipientsCommandHandler {
	return PurgeInactiveRecipientsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the purge command and returns how many recipients were
// purged.
func (h PurgeInactiveRecipientsCommandHandler) Handle(
	ctx context.Context,
	cmd PurgeInactiveRecipientsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.Retention())

	recipientRepo := uow.RecipientRepository()
	inactive, err := recipientRepo.GetAllInactiveSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	auditRepo := uow.AuditRepository()
	for _, r := range inactive {
		r.Purge(now)
		if err = recipientRepo.Update(ctx, r); err != nil {
			return 0, err
		}

		recipientID := r.ID()
		entry, entryErr := audit.NewEntry(
			kernel.NewUUID(),
			audit.ActionRecipientDataPurged,
			nil, &recipientID, nil, nil,
			map[string]any{"cutoff": cutoff.Format(time.RFC3339)},
			"",
			now,
		)
		if entryErr != nil {
			return 0, entryErr
		}
		if err = auditRepo.Append(ctx, entry); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(inactive), nil
}
