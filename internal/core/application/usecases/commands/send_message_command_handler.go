package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
	"communitydelivery/internal/pkg/errs"
)

// ErrConversationClosed is returned when sending a message on a delivery that
// is not currently claimed or in transit.
var ErrConversationClosed = errors.New("messages are only allowed while a delivery is claimed or in transit")

// SendMessageCommandHandler handles in-app messaging between the parties of a
// delivery. Only the owning recipient and the assigned volunteer may write,
// and only while the delivery is claimed or picked up; once it completes or
// reopens the conversation closes. Every sent message lands in the audit
// trail.
type SendMessageCommandHandler struct {
	uowFactory MessageUoWFactory
}

// NewSendMessageCommandHandler creates a handler for sending delivery
// messages.
func NewSendMessageCommandHandler(uowFactory MessageUoWFactory) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the message command. Returns ErrNotDeliveryOwner or
// delivery.ErrNotAssigned for a sender who is not party to the delivery and
// ErrConversationClosed when the delivery is not in an active claimed state.
func (h SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) error {
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

	if err = authorizeParticipant(target, cmd.Sender(), cmd.SenderID()); err != nil {
		return err
	}
	if target.Status() != delivery.StatusClaimed && target.Status() != delivery.StatusPickedUp {
		return ErrConversationClosed
	}

	now := time.Now().UTC()
	newMessage, err := message.NewMessage(
		kernel.NewUUID(),
		cmd.DeliveryID(),
		cmd.Sender(),
		cmd.SenderID(),
		cmd.Content(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.MessageRepository().Add(ctx, newMessage); err != nil {
		return err
	}

	deliveryID := cmd.DeliveryID()
	recipientID := target.RecipientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionMessageSent,
		&deliveryID, &recipientID, target.VolunteerID(), nil,
		map[string]any{"sender": cmd.Sender().String()},
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

// authorizeParticipant checks that the caller is one of the delivery's two
// parties: the owning recipient or the assigned volunteer.
func authorizeParticipant(target *delivery.Delivery, side message.Sender, callerID kernel.UUID) error {
	switch side {
	case message.SenderRecipient:
		if !target.RecipientID().IsEqual(callerID) {
			return ErrNotDeliveryOwner
		}
	case message.SenderVolunteer:
		if target.VolunteerID() == nil || !target.VolunteerID().IsEqual(callerID) {
			return delivery.ErrNotAssigned
		}
	default:
		return errs.NewValueIsInvalidError("sender")
	}
	return nil
}
