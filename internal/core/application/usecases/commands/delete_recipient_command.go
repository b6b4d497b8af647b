package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrDeleteRecipientCommandIsNotConstructed = errors.New(
	"DeleteRecipientCommand must be created via NewDeleteRecipientCommand constructor",
)

// DeleteRecipientCommand represents a recipient deleting their account.
type DeleteRecipientCommand struct { //nolint:recvcheck //using for validation
	recipientID kernel.UUID
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewDeleteRecipientCommand creates an account deletion command.
func NewDeleteRecipientCommand(recipientID kernel.UUID, ipAddress string) (DeleteRecipientCommand, error) {
	cmd := DeleteRecipientCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setRecipientID(recipientID); err != nil {
		return DeleteRecipientCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteRecipientCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRecipientCommandIsNotConstructed)
}

// RecipientID returns the account being deleted.
func (c DeleteRecipientCommand) RecipientID() kernel.UUID { return c.recipientID }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c DeleteRecipientCommand) IPAddress() string { return c.ipAddress }

func (c *DeleteRecipientCommand) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recipientID = id
	return nil
}
