package commands_test

import (
	"testing"

	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkMessagesReadCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	target := newClaimedDelivery(t, deliveryID, recipientID, kernel.NewUUID())

	cmd, err := commands.NewMarkMessagesReadCommand(deliveryID, message.SenderRecipient, recipientID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	messageRepo := new(MockMessageRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(target, nil).Once(),
		uow.On("MessageRepository").Return(messageRepo).Once(),
		messageRepo.On("MarkAllRead", ctx, deliveryID, recipientID, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMessageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkMessagesReadCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	messageRepo.AssertExpectations(t)
}

func TestMarkMessagesReadCommandHandler_Handle_ForeignVolunteer(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	target := newClaimedDelivery(t, deliveryID, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewMarkMessagesReadCommand(deliveryID, message.SenderVolunteer, kernel.NewUUID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMessageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkMessagesReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrNotAssigned)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMarkMessagesReadCommand_Validation(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewMarkMessagesReadCommand(kernel.UUID{}, message.SenderRecipient, id)
	require.Error(t, err)

	_, err = commands.NewMarkMessagesReadCommand(id, message.SenderUnknown, id)
	require.Error(t, err)

	require.Error(t, commands.MarkMessagesReadCommand{}.Validate())
}
