package commands

import (
	"errors"
	"strings"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

var ErrSendMessageCommandIsNotConstructed = errors.New(
	"SendMessageCommand must be created via NewSendMessageCommand constructor",
)

// SendMessageCommand represents one party of a delivery sending an in-app
// message to the other.
type SendMessageCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	sender     message.Sender
	senderID   kernel.UUID
	content    string
	ipAddress  string

	guard guard.ConstructorGuard
}

// NewSendMessageCommand creates a message command. content must be non-empty
// after trimming and at most message.MaxContentLength characters.
func NewSendMessageCommand(
	deliveryID kernel.UUID,
	sender message.Sender,
	senderID kernel.UUID,
	content string,
	ipAddress string,
) (SendMessageCommand, error) {
	cmd := SendMessageCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setSender(sender),
		cmd.setSenderID(senderID),
		cmd.setContent(content),
	); err != nil {
		return SendMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

// DeliveryID returns the delivery the message belongs to.
func (c SendMessageCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// Sender returns which side of the delivery is writing.
func (c SendMessageCommand) Sender() message.Sender { return c.sender }

// SenderID returns the author's identifier.
func (c SendMessageCommand) SenderID() kernel.UUID { return c.senderID }

// Content returns the trimmed message body.
func (c SendMessageCommand) Content() string { return c.content }

// IPAddress returns the caller's address for the audit trail.
func (c SendMessageCommand) IPAddress() string { return c.ipAddress }

func (c *SendMessageCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *SendMessageCommand) setSender(sender message.Sender) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	c.sender = sender
	return nil
}

func (c *SendMessageCommand) setSenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.senderID = id
	return nil
}

func (c *SendMessageCommand) setContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	if len(content) > message.MaxContentLength {
		return errs.NewValueIsOutOfRangeError("content length", len(content), 1, message.MaxContentLength)
	}
	c.content = content
	return nil
}
