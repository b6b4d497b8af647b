package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
)

// MarkPickedUpCommandHandler handles the pickup transition. Only the assigned
// volunteer may report pickup; the aggregate rejects anyone else.
type MarkPickedUpCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewMarkPickedUpCommandHandler creates a handler for pickup reporting.
func NewMarkPickedUpCommandHandler(uowFactory DeliveryUoWFactory) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup command. Returns delivery.ErrNotAssigned when
// the caller does not hold the claim and delivery.ErrInvalidTransition when
// the delivery is not in the claimed status.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
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

	now := time.Now().UTC()
	if err = target.MarkPickedUp(cmd.VolunteerID(), now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	deliveryID := cmd.DeliveryID()
	volunteerID := cmd.VolunteerID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionDeliveryPickedUp,
		&deliveryID, nil, &volunteerID, nil,
		nil,
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
