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

// ReleaseClaimCommandHandler handles a volunteer returning a claim. The
// delivery reopens with a smaller priority boost than a cancellation requeue;
// a release is routine, a broken promise after pickup is not possible (the
// aggregate refuses to release in-transit deliveries).
type ReleaseClaimCommandHandler struct {
	uowFactory    DeliveryUoWFactory
	requeuePolicy delivery.RequeuePolicy
	notifier      ports.Notifier
}

// NewReleaseClaimCommandHandler creates a handler for claim releases.
func NewReleaseClaimCommandHandler(
	uowFactory DeliveryUoWFactory,
	requeuePolicy delivery.RequeuePolicy,
	notifier ports.Notifier,
) ReleaseClaimCommandHandler {
	return ReleaseClaimCommandHandler{
		uowFactory:    uowFactory,
		requeuePolicy: requeuePolicy,
		notifier:      notifier,
	}
}

// Handle processes the release command. Returns delivery.ErrNotAssigned when
// the caller does not hold the claim and delivery.ErrInvalidTransition when
// the delivery is not in the claimed status.
func (h ReleaseClaimCommandHandler) Handle(ctx context.Context, cmd ReleaseClaimCommand) error {
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
	if err = target.Release(cmd.VolunteerID(), h.requeuePolicy, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	deliveryID := cmd.DeliveryID()
	volunteerID := cmd.VolunteerID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionDeliveryReleased,
		&deliveryID, nil, &volunteerID, nil,
		map[string]any{
			"reason":         cmd.Reason(),
			"priority_boost": h.requeuePolicy.ReleaseBoost,
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

	_ = h.notifier.NotifyDeliveryRequeued(ctx, cmd.DeliveryID(), target.RecipientID())

	return nil
}
