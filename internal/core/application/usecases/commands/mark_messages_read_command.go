package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
	"communitydelivery/internal/pkg/guard"
)

var ErrMarkMessagesReadCommandIsNotConstructed = errors.New(
	"MarkMessagesReadCommand must be created via NewMarkMessagesReadCommand constructor",
)

// MarkMessagesReadCommand represents one party of a delivery acknowledging
// the other party's messages.
type MarkMessagesReadCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reader     message.Sender
	readerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkMessagesReadCommand creates a read acknowledgment command.
func NewMarkMessagesReadCommand(
	deliveryID kernel.UUID,
	reader message.Sender,
	readerID kernel.UUID,
) (MarkMessagesReadCommand, error) {
	cmd := MarkMessagesReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setReader(reader),
		cmd.setReaderID(readerID),
	); err != nil {
		return MarkMessagesReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkMessagesReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkMessagesReadCommandIsNotConstructed)
}

// DeliveryID returns the delivery whose messages are acknowledged.
func (c MarkMessagesReadCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// Reader returns which side of the delivery is acknowledging.
func (c MarkMessagesReadCommand) Reader() message.Sender { return c.reader }

// ReaderID returns the acknowledging party's identifier.
func (c MarkMessagesReadCommand) ReaderID() kernel.UUID { return c.readerID }

func (c *MarkMessagesReadCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *MarkMessagesReadCommand) setReader(reader message.Sender) error {
	if err := reader.Validate(); err != nil {
		return err
	}
	c.reader = reader
	return nil
}

func (c *MarkMessagesReadCommand) setReaderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.readerID = id
	return nil
}
