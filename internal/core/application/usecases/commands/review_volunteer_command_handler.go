package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
)

// ReviewVolunteerCommandHandler handles admin vetting decisions. The
// aggregate enforces which transitions each decision is valid from.
type ReviewVolunteerCommandHandler struct {
	uowFactory VolunteerUoWFactory
}

// NewReviewVolunteerCommandHandler creates a handler for vetting reviews.
func NewReviewVolunteerCommandHandler(uowFactory VolunteerUoWFactory) ReviewVolunteerCommandHandler {
	return ReviewVolunteerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review command.
func (h ReviewVolunteerCommandHandler) Handle(ctx context.Context, cmd ReviewVolunteerCommand) error {
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

	volunteerRepo := uow.VolunteerRepository()
	applicant, err := volunteerRepo.Get(ctx, cmd.VolunteerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrVolunteerNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var action audit.Action

	switch cmd.Decision() {
	case DecisionApprove:
		err = applicant.Approve(cmd.AdminID(), now)
		action = audit.ActionVolunteerApproved
	case DecisionReject:
		err = applicant.Reject(cmd.AdminID(), cmd.Reason(), now)
		action = audit.ActionVolunteerRejected
	case DecisionSuspend:
		err = applicant.Suspend(cmd.AdminID(), cmd.Reason(), now)
		action = audit.ActionVolunteerSuspended
	default:
		err = ErrReviewDecisionIsInvalid
	}
	if err != nil {
		return err
	}

	if err = volunteerRepo.Update(ctx, applicant); err != nil {
		return err
	}

	volunteerID := cmd.VolunteerID()
	adminID := cmd.AdminID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		action,
		nil, nil, &volunteerID, &adminID,
		map[string]any{"reason": cmd.Reason()},
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
