package commands_test

import (
	"testing"

	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/volunteer"
	"communitydelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewUoW(ctx any, applicant *volunteer.Volunteer) (*MockVolunteerRepository, *MockAuditRepository, *MockUoW) {
	volunteerRepo := new(MockVolunteerRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VolunteerRepository").Return(volunteerRepo).Once(),
		volunteerRepo.On("Get", ctx, mock.Anything).Return(applicant, nil).Once(),
		volunteerRepo.On("Update", ctx, applicant).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	return volunteerRepo, auditRepo, uow
}

func TestReviewVolunteerCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()

	volunteerID := kernel.NewUUID()
	adminID := kernel.NewUUID()
	cmd, err := commands.NewReviewVolunteerCommand(
		volunteerID, adminID, commands.DecisionApprove, "", "203.0.113.7")
	require.NoError(t, err)

	applicant := newPendingVolunteer(t, volunteerID)

	volunteerRepo, auditRepo, uow := newReviewUoW(ctx, applicant)

	factory := new(MockVolunteerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewVolunteerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, volunteer.StatusApproved, applicant.Status())
	require.NotNil(t, applicant.ReviewedBy())
	require.True(t, applicant.ReviewedBy().IsEqual(adminID))
	uow.AssertExpectations(t)
	volunteerRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestReviewVolunteerCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()

	volunteerID := kernel.NewUUID()
	cmd, err := commands.NewReviewVolunteerCommand(
		volunteerID, kernel.NewUUID(), commands.DecisionReject, "failed reference check", "")
	require.NoError(t, err)

	applicant := newPendingVolunteer(t, volunteerID)

	_, _, uow := newReviewUoW(ctx, applicant)

	factory := new(MockVolunteerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewVolunteerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, volunteer.StatusRejected, applicant.Status())
	require.Equal(t, "failed reference check", applicant.RejectionReason())
}

func TestReviewVolunteerCommandHandler_Handle_Suspend(t *testing.T) {
	ctx := t.Context()

	volunteerID := kernel.NewUUID()
	cmd, err := commands.NewReviewVolunteerCommand(
		volunteerID, kernel.NewUUID(), commands.DecisionSuspend, "repeated no-shows", "")
	require.NoError(t, err)

	applicant := newApprovedVolunteer(t, volunteerID)

	_, _, uow := newReviewUoW(ctx, applicant)

	factory := new(MockVolunteerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewVolunteerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, volunteer.StatusSuspended, applicant.Status())
	require.Equal(t, "repeated no-shows", applicant.SuspensionReason())
}

func TestReviewVolunteerCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	volunteerID := kernel.NewUUID()
	cmd, err := commands.NewReviewVolunteerCommand(
		volunteerID, kernel.NewUUID(), commands.DecisionSuspend, "reason", "")
	require.NoError(t, err)

	// Suspension is only valid from the approved status.
	applicant := newPendingVolunteer(t, volunteerID)

	volunteerRepo := new(MockVolunteerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VolunteerRepository").Return(volunteerRepo).Once(),
		volunteerRepo.On("Get", ctx, volunteerID).Return(applicant, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVolunteerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewVolunteerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReviewVolunteerCommandHandler_Handle_VolunteerNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewReviewVolunteerCommand(
		kernel.NewUUID(), kernel.NewUUID(), commands.DecisionApprove, "", "")
	require.NoError(t, err)

	volunteerRepo := new(MockVolunteerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VolunteerRepository").Return(volunteerRepo).Once(),
		volunteerRepo.On("Get", ctx, mock.Anything).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVolunteerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewVolunteerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrVolunteerNotFound)
}

func TestReviewVolunteerCommand_Validation(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewReviewVolunteerCommand(id, id, commands.DecisionReject, "", "")
	require.ErrorIs(t, err, commands.ErrReviewReasonIsRequired)

	_, err = commands.NewReviewVolunteerCommand(id, id, commands.DecisionSuspend, "", "")
	require.ErrorIs(t, err, commands.ErrReviewReasonIsRequired)

	_, err = commands.NewReviewVolunteerCommand(id, id, commands.ReviewDecision(99), "reason", "")
	require.ErrorIs(t, err, commands.ErrReviewDecisionIsInvalid)
}
