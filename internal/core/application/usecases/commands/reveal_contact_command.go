package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrRevealContactCommandIsNotConstructed = errors.New(
	"RevealContactCommand must be created via NewRevealContactCommand constructor",
)

// RevealContactCommand represents the assigned volunteer requesting the
// recipient's decrypted contact details for a claimed delivery.
type RevealContactCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	volunteerID kernel.UUID
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewRevealContactCommand creates a contact disclosure command.
func NewRevealContactCommand(
	deliveryID kernel.UUID,
	volunteerID kernel.UUID,
	ipAddress string,
) (RevealContactCommand, error) {
	cmd := RevealContactCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return RevealContactCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RevealContactCommand) Validate() error {
	return c.guard.Validate(ErrRevealContactCommandIsNotConstructed)
}

// DeliveryID returns the claimed delivery.
func (c RevealContactCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// VolunteerID returns the requesting volunteer.
func (c RevealContactCommand) VolunteerID() kernel.UUID { return c.volunteerID }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c RevealContactCommand) IPAddress() string { return c.ipAddress }

func (c *RevealContactCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *RevealContactCommand) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volunteerID = id
	return nil
}
