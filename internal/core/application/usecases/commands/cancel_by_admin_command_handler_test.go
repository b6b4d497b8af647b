package commands_test

import (
	"testing"

	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelByAdminCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCancelByAdminCommand(deliveryID, kernel.NewUUID(), "duplicate request", "203.0.113.7")
	require.NoError(t, err)

	target := newOpenDelivery(t, deliveryID, kernel.NewUUID())

	deliveryRepo := new(MockDeliveryRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(target, nil).Once(),
		deliveryRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelByAdminCommandHandler(factory, delivery.DefaultRequeuePolicy(), NoopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, delivery.StatusCanceled, target.Status())
	require.Equal(t, delivery.ActorAdmin, target.CanceledBy())
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestCancelByAdminCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewCancelByAdminCommand(kernel.NewUUID(), kernel.NewUUID(), "", "")

	require.ErrorIs(t, err, commands.ErrReasonIsRequired)
}

func TestCancelByAdminCommandHandler_Handle_InTransitRequeues(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	volunteerID := kernel.NewUUID()
	cmd, err := commands.NewCancelByAdminCommand(deliveryID, kernel.NewUUID(), "recipient unreachable", "")
	require.NoError(t, err)

	target := newClaimedDelivery(t, deliveryID, kernel.NewUUID(), volunteerID)
	require.NoError(t, target.MarkPickedUp(volunteerID, target.PickupTime()))
	priorBoost := target.Priority()

	deliveryRepo := new(MockDeliveryRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(target, nil).Once(),
		deliveryRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	policy := delivery.DefaultRequeuePolicy()
	handler := commands.NewCancelByAdminCommandHandler(factory, policy, NoopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, delivery.StatusOpen, target.Status())
	require.Nil(t, target.VolunteerID())
	require.Equal(t, priorBoost+policy.CancelBoost, target.Priority())
}
