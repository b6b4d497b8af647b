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

// ErrNotDeliveryOwner is returned when a recipient tries to cancel a delivery
// they did not request.
var ErrNotDeliveryOwner = errors.New("delivery belongs to a different recipient")

// CancelByRecipientCommandHandler handles recipient-initiated cancellation.
// Canceling a delivery someone already claimed does not kill the request: the
// aggregate reopens it with a priority boost, and the requesting recipient is
// notified that their delivery went back on the board.
type CancelByRecipientCommandHandler struct {
	uowFactory    DeliveryUoWFactory
	requeuePolicy delivery.RequeuePolicy
	notifier      ports.Notifier
}

// NewCancelByRecipientCommandHandler creates a handler for recipient
// cancellations.
func NewCancelByRecipientCommandHandler(
	uowFactory DeliveryUoWFactory,
	requeuePolicy delivery.RequeuePolicy,
	notifier ports.Notifier,
) CancelByRecipientCommandHandler {
	return CancelByRecipientCommandHandler{
		uowFactory:    uowFactory,
		requeuePolicy: requeuePolicy,
		notifier:      notifier,
	}
}

// Handle processes the cancellation command. Returns ErrNotDeliveryOwner for
// a foreign delivery and delivery.ErrInvalidTransition when the delivery is
// already terminal.
func (h CancelByRecipientCommandHandler) Handle(ctx context.Context, cmd CancelByRecipientCommand) error {
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
	if !target.RecipientID().IsEqual(cmd.RecipientID()) {
		return ErrNotDeliveryOwner
	}

	priorStatus := target.Status()
	now := time.Now().UTC()
	if err = target.Cancel(delivery.ActorRecipient, cmd.Reason(), h.requeuePolicy, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	requeued := target.Status() == delivery.StatusOpen

	deliveryID := cmd.DeliveryID()
	recipientID := cmd.RecipientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionDeliveryCanceled,
		&deliveryID, &recipientID, nil, nil,
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
