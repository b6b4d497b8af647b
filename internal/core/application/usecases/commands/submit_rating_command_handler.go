package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/rating"
	"communitydelivery/internal/pkg/errs"
)

var (
	// ErrDeliveryNotCompleted is returned when rating a delivery that never
	// reached the completed status.
	ErrDeliveryNotCompleted = errors.New("only completed deliveries can be rated")

	// ErrAlreadyRated is returned when the delivery already carries a
	// rating.
	ErrAlreadyRated = errors.New("delivery is already rated")

	// ErrFulfillerUnknown is returned when the audit trail holds no
	// completion record for the delivery, so the rated volunteer cannot be
	// resolved.
	ErrFulfillerUnknown = errors.New("no completion record found for delivery")
)

// SubmitRatingCommandHandler handles rating submission. A completed delivery
// no longer carries its assignment, so the fulfiller is resolved from the
// completion entry in the audit trail. The volunteer's stored average is
// recomputed from all rating rows in the same transaction.
type SubmitRatingCommandHandler struct {
	uowFactory RatingUoWFactory
}

// NewSubmitRatingCommandHandler creates a handler for rating submission.
func NewSubmitRatingCommandHandler(uowFactory RatingUoWFactory) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command. Returns ErrNotDeliveryOwner for a
// foreign delivery, ErrDeliveryNotCompleted for an unfinished one, and
// ErrAlreadyRated for a duplicate.
func (h SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) error {
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

	target, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}
	if !target.RecipientID().IsEqual(cmd.RecipientID()) {
		return ErrNotDeliveryOwner
	}
	if target.Status() != delivery.StatusCompleted {
		return ErrDeliveryNotCompleted
	}

	ratingRepo := uow.RatingRepository()
	_, err = ratingRepo.GetForDelivery(ctx, cmd.DeliveryID())
	if err == nil {
		return ErrAlreadyRated
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	auditRepo := uow.AuditRepository()
	fulfillerID, err := h.resolveFulfiller(ctx, auditRepo.GetForDelivery, cmd.DeliveryID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newRating, err := rating.NewRating(
		kernel.NewUUID(),
		cmd.DeliveryID(),
		fulfillerID,
		cmd.RecipientID(),
		cmd.Score(),
		cmd.Comment(),
		now,
	)
	if err != nil {
		return err
	}

	if err = ratingRepo.Add(ctx, newRating); err != nil {
		return err
	}

	avg, ok, err := ratingRepo.AverageForVolunteer(ctx, fulfillerID)
	if err != nil {
		return err
	}
	if ok {
		volunteerRepo := uow.VolunteerRepository()
		fulfiller, getErr := volunteerRepo.Get(ctx, fulfillerID)
		if getErr != nil {
			return getErr
		}
		fulfiller.SetAverageRating(avg)
		if err = volunteerRepo.Update(ctx, fulfiller); err != nil {
			return err
		}
	}

	deliveryID := cmd.DeliveryID()
	recipientID := cmd.RecipientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionRatingSubmitted,
		&deliveryID, &recipientID, &fulfillerID, nil,
		map[string]any{"score": cmd.Score()},
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

// resolveFulfiller finds the volunteer recorded by the delivery's completion
// entry.
func (h SubmitRatingCommandHandler) resolveFulfiller(
	ctx context.Context,
	getForDelivery func(context.Context, kernel.UUID) ([]*audit.Entry, error),
	deliveryID kernel.UUID,
) (kernel.UUID, error) {
	entries, err := getForDelivery(ctx, deliveryID)
	if err != nil {
		return kernel.UUID{}, err
	}

	// Entries arrive oldest first; take the latest completion.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Action() == audit.ActionDeliveryCompleted && e.VolunteerID() != nil {
			return *e.VolunteerID(), nil
		}
	}

	return kernel.UUID{}, ErrFulfillerUnknown
}
