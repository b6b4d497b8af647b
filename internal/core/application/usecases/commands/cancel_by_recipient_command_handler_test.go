package commands_test

import (
	"testing"

	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCancelUoW(ctx any, target *delivery.Delivery) (*MockDeliveryRepository, *MockAuditRepository, *MockUoW) {
	deliveryRepo := new(MockDeliveryRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, mock.Anything).Return(target, nil).Once(),
		deliveryRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	return deliveryRepo, auditRepo, uow
}

func TestCancelByRecipientCommandHandler_Handle_OpenDeliveryGoesTerminal(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	cmd, err := commands.NewCancelByRecipientCommand(deliveryID, recipientID, "no longer needed", "203.0.113.7")
	require.NoError(t, err)

	target := newOpenDelivery(t, deliveryID, recipientID)

	deliveryRepo, auditRepo, uow := newCancelUoW(ctx, target)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelByRecipientCommandHandler(factory, delivery.DefaultRequeuePolicy(), NoopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, delivery.StatusCanceled, target.Status())
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestCancelByRecipientCommandHandler_Handle_ClaimedDeliveryRequeues(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	cmd, err := commands.NewCancelByRecipientCommand(deliveryID, recipientID, "", "")
	require.NoError(t, err)

	target := newClaimedDelivery(t, deliveryID, recipientID, kernel.NewUUID())
	priorBoost := target.Priority()

	_, _, uow := newCancelUoW(ctx, target)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	policy := delivery.DefaultRequeuePolicy()
	handler := commands.NewCancelByRecipientCommandHandler(factory, policy, NoopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, delivery.StatusOpen, target.Status())
	require.Nil(t, target.VolunteerID())
	require.Equal(t, priorBoost+policy.CancelBoost, target.Priority())
}

func TestCancelByRecipientCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCancelByRecipientCommand(deliveryID, kernel.NewUUID(), "", "")
	require.NoError(t, err)

	target := newOpenDelivery(t, deliveryID, kernel.NewUUID())

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelByRecipientCommandHandler(factory, delivery.DefaultRequeuePolicy(), NoopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNotDeliveryOwner)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelByRecipientCommandHandler_Handle_AlreadyTerminal(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	cmd, err := commands.NewCancelByRecipientCommand(deliveryID, recipientID, "", "")
	require.NoError(t, err)

	target := newCompletedDelivery(t, deliveryID, recipientID, kernel.NewUUID())

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelByRecipientCommandHandler(factory, delivery.DefaultRequeuePolicy(), NoopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidTransition)
}
