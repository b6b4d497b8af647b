package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/pkg/errs"
)

// MarkMessagesReadCommandHandler handles read acknowledgment for a delivery's
// conversation. Reading never happens as a side effect of fetching messages;
// clients acknowledge explicitly, which keeps the message query free of
// writes. Acknowledging is not limited to active deliveries, so the owning
// recipient can still clear a completed conversation.
type MarkMessagesReadCommandHandler struct {
	uowFactory MessageUoWFactory
}

// NewMarkMessagesReadCommandHandler creates a handler for read
// acknowledgment.
func NewMarkMessagesReadCommandHandler(uowFactory MessageUoWFactory) MarkMessagesReadCommandHandler {
	return MarkMessagesReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acknowledgment. Returns ErrNotDeliveryOwner or
// delivery.ErrNotAssigned for a reader who is not party to the delivery.
func (h MarkMessagesReadCommandHandler) Handle(ctx context.Context, cmd MarkMessagesReadCommand) error {
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

	if err = authorizeParticipant(target, cmd.Reader(), cmd.ReaderID()); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = uow.MessageRepository().MarkAllRead(ctx, cmd.DeliveryID(), cmd.ReaderID(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
