package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
)

// accountDeletedReason is recorded on deliveries canceled by account
// deletion.
const accountDeletedReason = "recipient account deleted"

// DeleteRecipientCommandHandler handles account deletion. The recipient row
// is soft-deleted so audit references keep resolving, and every active
// delivery is canceled without requeueing: there is nobody left to deliver
// to.
type DeleteRecipientCommandHandler struct {
	uowFactory DeleteRecipientUoWFactory
}

// NewDeleteRecipientCommandHandler creates a handler for account deletion.
func NewDeleteRecipientCommandHandler(uowFactory DeleteRecipientUoWFactory) DeleteRecipientCommandHandler {
	return DeleteRecipientCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
func (h DeleteRecipientCommandHandler) Handle(ctx context.Context, cmd DeleteRecipientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	recipientRepo := uow.RecipientRepository()
	account, err := recipientRepo.Get(ctx, cmd.RecipientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRecipientNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = account.Delete(now); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	auditRepo := uow.AuditRepository()

	active, err := deliveryRepo.GetActiveForRecipient(ctx, cmd.RecipientID())
	if err != nil {
		return err
	}

	recipientID := cmd.RecipientID()
	for _, d := range active {
		priorStatus := d.Status()
		if err = d.CancelWithoutRequeue(delivery.ActorSystem, accountDeletedReason, now); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}

		deliveryID := d.ID()
		entry, entryErr := audit.NewEntry(
			kernel.NewUUID(),
			audit.ActionDeliveryCanceled,
			&deliveryID, &recipientID, nil, nil,
			map[string]any{
				"prior_status": priorStatus.String(),
				"reason":       accountDeletedReason,
				"requeued":     false,
			},
			"",
			now,
		)
		if entryErr != nil {
			return entryErr
		}
		if err = auditRepo.Append(ctx, entry); err != nil {
			return err
		}
	}

	if err = recipientRepo.Update(ctx, account); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionRecipientDeleted,
		nil, &recipientID, nil, nil,
		map[string]any{"canceled_deliveries": len(active)},
		cmd.IPAddress(),
		now,
	)
	if err != nil {
		return err
	}

	if err = auditRepo.Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
