package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/ports"
	"communitydelivery/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler handles the completion transition. The
// delivery drops its assignment on completion; the audit entry written here
// is what preserves who fulfilled it, and the volunteer's lifetime counter is
// incremented in the same transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory ClaimUoWFactory
	notifier   ports.Notifier
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory ClaimUoWFactory,
	notifier ports.Notifier,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion command. Returns delivery.ErrNotAssigned
// when the caller does not hold the claim and delivery.ErrInvalidTransition
// when the delivery is neither claimed nor picked up.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	target, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}

	priorStatus := target.Status()
	now := time.Now().UTC()
	if err = target.Complete(cmd.VolunteerID(), now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	volunteerRepo := uow.VolunteerRepository()
	fulfiller, err := volunteerRepo.Get(ctx, cmd.VolunteerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrVolunteerNotFound
	}
	if err != nil {
		return err
	}

	fulfiller.RecordCompletedDelivery()
	if err = volunteerRepo.Update(ctx, fulfiller); err != nil {
		return err
	}

	deliveryID := cmd.DeliveryID()
	volunteerID := cmd.VolunteerID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionDeliveryCompleted,
		&deliveryID, nil, &volunteerID, nil,
		map[string]any{"prior_status": priorStatus.String()},
		cmd.IPAddress(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyDeliveryCompleted(ctx, cmd.DeliveryID(), target.RecipientID())

	return nil
}
