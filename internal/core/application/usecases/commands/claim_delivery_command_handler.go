package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/volunteer"
	"communitydelivery/internal/core/domain/services"
	"communitydelivery/internal/core/ports"
	"communitydelivery/internal/pkg/errs"
)

var (
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrVolunteerNotFound = errors.New("volunteer not found")

	// ErrNotClaimable is returned when the delivery is no longer open,
	// including the case where another volunteer won the race for it.
	ErrNotClaimable = errors.New("delivery is not claimable")
)

// ClaimDeliveryCommandHandler orchestrates claiming a delivery. The checks
// run in order: the volunteer must be approved, must have spare claim
// capacity, and must cover both delivery endpoints. The claim itself is a
// single conditional write, so two volunteers racing for the same delivery
// resolve to exactly one winner and one ErrNotClaimable without any
// row-level locking held across the checks.
type ClaimDeliveryCommandHandler struct {
	uowFactory    ClaimUoWFactory
	capacityGuard services.CapacityGuard
	eligibility   services.EligibilityPolicy
	notifier      ports.Notifier
}

// NewClaimDeliveryCommandHandler creates a handler for claim operations.
func NewClaimDeliveryCommandHandler(
	uowFactory ClaimUoWFactory,
	capacityGuard services.CapacityGuard,
	notifier ports.Notifier,
) ClaimDeliveryCommandHandler {
	return ClaimDeliveryCommandHandler{
		uowFactory:    uowFactory,
		capacityGuard: capacityGuard,
		eligibility:   services.NewEligibilityPolicy(),
		notifier:      notifier,
	}
}

// Handle processes the claim command. Returns ErrNotClaimable when the
// delivery is not open anymore, services.ErrCapacityExceeded when the
// volunteer is at the claim ceiling, and services.ErrOutOfServiceArea when an
// endpoint lies outside the volunteer's radius.
func (h ClaimDeliveryCommandHandler) Handle(ctx context.Context, cmd ClaimDeliveryCommand) error {
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

	claimant, err := uow.VolunteerRepository().Get(ctx, cmd.VolunteerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrVolunteerNotFound
	}
	if err != nil {
		return err
	}
	if !claimant.Status().IsApproved() {
		return volunteer.ErrNotApproved
	}

	deliveryRepo := uow.DeliveryRepository()
	target, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}
	if target.Status() != delivery.StatusOpen {
		return ErrNotClaimable
	}

	activeCount, err := deliveryRepo.CountActiveForVolunteer(ctx, cmd.VolunteerID())
	if err != nil {
		return err
	}
	if err = h.capacityGuard.CheckCanAccept(activeCount); err != nil {
		return err
	}

	if err = h.checkEligibility(ctx, uow, claimant, target); err != nil {
		return err
	}

	now := time.Now().UTC()
	won, err := deliveryRepo.ClaimIfOpen(ctx, cmd.DeliveryID(), cmd.VolunteerID(), now)
	if err != nil {
		return err
	}
	if !won {
		return ErrNotClaimable
	}

	deliveryID := cmd.DeliveryID()
	volunteerID := cmd.VolunteerID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionDeliveryClaimed,
		&deliveryID, nil, &volunteerID, nil,
		map[string]any{"prior_status": delivery.StatusOpen.String()},
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

	// Best effort, outside the transaction.
	_ = h.notifier.NotifyDeliveryClaimed(ctx, cmd.DeliveryID(), target.RecipientID())

	return nil
}

// checkEligibility applies the geographic policy using the claimant's service
// area, the store's coordinates, and the recipient's fuzzed location.
func (h ClaimDeliveryCommandHandler) checkEligibility(
	ctx context.Context,
	uow ClaimUoW,
	claimant *volunteer.Volunteer,
	target *delivery.Delivery,
) error {
	if !claimant.HasServiceLocation() {
		return nil
	}

	requester, err := uow.RecipientRepository().Get(ctx, target.RecipientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRecipientNotFound
	}
	if err != nil {
		return err
	}

	return h.eligibility.CheckEligible(
		claimant.ServiceLocation(),
		claimant.ServiceRadiusMiles(),
		target.StoreLocation(),
		requester.Location(),
	)
}
