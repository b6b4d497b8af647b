package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents the assigned volunteer confirming
// handoff to the recipient.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	volunteerID kernel.UUID
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
func NewCompleteDeliveryCommand(
	deliveryID kernel.UUID,
	volunteerID kernel.UUID,
	ipAddress string,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being completed.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// VolunteerID returns the confirming volunteer.
func (c CompleteDeliveryCommand) VolunteerID() kernel.UUID { return c.volunteerID }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c CompleteDeliveryCommand) IPAddress() string { return c.ipAddress }

func (c *CompleteDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CompleteDeliveryCommand) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volunteerID = id
	return nil
}
