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

// CancelByAdminCommandHandler handles admin-initiated cancellation. Admin
// cancellations follow the same requeue rule as recipient ones: a claimed or
// in-transit delivery reopens with a priority boost instead of dying.
type CancelByAdminCommandHandler struct {
	uowFactory    DeliveryUoWFactory
	requeuePolicy delivery.RequeuePolicy
	notifier      ports.Notifier
}

// NewCancelByAdminCommandHandler creates a handler for admin cancellations.
func NewCancelByAdminCommandHandler(
	uowFactory DeliveryUoWFactory,
	requeuePolicy delivery.RequeuePolicy,
	notifier ports.Notifier,
) CancelByAdminCommandHandler {
	return CancelByAdminCommandHandler{
		uowFactory:    uowFactory,
		requeuePolicy: requeuePolicy,
		notifier:      notifier,
	}
}

// Handle processes the admin cancellation command.
func (h CancelByAdminCommandHandler) Handle(ctx context.Context, cmd CancelByAdminCommand) error {
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
	if err = target.Cancel(delivery.ActorAdmin, cmd.Reason(), h.requeuePolicy, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	requeued := target.Status() == delivery.StatusOpen

	deliveryID := cmd.DeliveryID()
	adminID := cmd.AdminID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionDeliveryCanceled,
		&deliveryID, nil, nil, &adminID,
		map[string]any{
			"prior_status": priorStatus.String(),
			"reason":       cmd.Reason(),
			"requeued":     requeued,
		},
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

	if requeued {
		_ = h.notifier.NotifyDeliveryRequeued(ctx, cmd.DeliveryID(), target.RecipientID())
	}

	return nil
}
