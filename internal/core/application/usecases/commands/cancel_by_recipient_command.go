package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrCancelByRecipientCommandIsNotConstructed = errors.New(
	"CancelByRecipientCommand must be created via NewCancelByRecipientCommand constructor",
)

// CancelByRecipientCommand represents the requesting recipient canceling
// their own delivery.
type CancelByRecipientCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	recipientID kernel.UUID
	reason      string
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewCancelByRecipientCommand creates a cancellation command. reason is
// optional.
func NewCancelByRecipientCommand(
	deliveryID kernel.UUID,
	recipientID kernel.UUID,
	reason string,
	ipAddress string,
) (CancelByRecipientCommand, error) {
	cmd := CancelByRecipientCommand{
		reason:    reason,
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setRecipientID(recipientID),
	); err != nil {
		return CancelByRecipientCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelByRecipientCommand) Validate() error {
	return c.guard.Validate(ErrCancelByRecipientCommandIsNotConstructed)
}

// DeliveryID returns the delivery being canceled.
func (c CancelByRecipientCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// RecipientID returns the canceling recipient.
func (c CancelByRecipientCommand) RecipientID() kernel.UUID { return c.recipientID }

// Reason returns the optional cancellation reason.
func (c CancelByRecipientCommand) Reason() string { return c.reason }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c CancelByRecipientCommand) IPAddress() string { return c.ipAddress }

func (c *CancelByRecipientCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CancelByRecipientCommand) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recipientID = id
	return nil
}
