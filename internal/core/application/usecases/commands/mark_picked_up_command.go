package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents the assigned volunteer reporting that the
// groceries left the store.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	volunteerID kernel.UUID
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to mark a delivery picked up.
func NewMarkPickedUpCommand(
	deliveryID kernel.UUID,
	volunteerID kernel.UUID,
	ipAddress string,
) (MarkPickedUpCommand, error) {
	cmd := MarkPickedUpCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// DeliveryID returns the delivery being updated.
func (c MarkPickedUpCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// VolunteerID returns the reporting volunteer.
func (c MarkPickedUpCommand) VolunteerID() kernel.UUID { return c.volunteerID }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c MarkPickedUpCommand) IPAddress() string { return c.ipAddress }

func (c *MarkPickedUpCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *MarkPickedUpCommand) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volunteerID = id
	return nil
}
