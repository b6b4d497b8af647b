package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrClaimDeliveryCommandIsNotConstructed = errors.New(
	"ClaimDeliveryCommand must be created via NewClaimDeliveryCommand constructor",
)

// ClaimDeliveryCommand represents a volunteer's attempt to claim an open
// delivery.
type ClaimDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	volunteerID kernel.UUID
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewClaimDeliveryCommand creates a command to claim a delivery.
func NewClaimDeliveryCommand(
	deliveryID kernel.UUID,
	volunteerID kernel.UUID,
	ipAddress string,
) (ClaimDeliveryCommand, error) {
	cmd := ClaimDeliveryCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return ClaimDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrClaimDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being claimed.
func (c ClaimDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// VolunteerID returns the claiming volunteer.
func (c ClaimDeliveryCommand) VolunteerID() kernel.UUID { return c.volunteerID }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c ClaimDeliveryCommand) IPAddress() string { return c.ipAddress }

func (c *ClaimDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *ClaimDeliveryCommand) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volunteerID = id
	return nil
}
