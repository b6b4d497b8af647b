package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrReleaseClaimCommandIsNotConstructed = errors.New(
	"ReleaseClaimCommand must be created via NewReleaseClaimCommand constructor",
)

// ReleaseClaimCommand represents a volunteer giving a claimed delivery back
// to the open pool before picking it up.
type ReleaseClaimCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	volunteerID kernel.UUID
	reason      string
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewReleaseClaimCommand creates a command to release a claim. reason is
// optional.
func NewReleaseClaimCommand(
	deliveryID kernel.UUID,
	volunteerID kernel.UUID,
	reason string,
	ipAddress string,
) (ReleaseClaimCommand, error) {
	cmd := ReleaseClaimCommand{
		reason:    reason,
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setVolunteerID(volunteerID),
	); err != nil {
		return ReleaseClaimCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseClaimCommand) Validate() error {
	return c.guard.Validate(ErrReleaseClaimCommandIsNotConstructed)
}

// DeliveryID returns the delivery being released.
func (c ReleaseClaimCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// VolunteerID returns the releasing volunteer.
func (c ReleaseClaimCommand) VolunteerID() kernel.UUID { return c.volunteerID }

// Reason returns the optional release reason.
func (c ReleaseClaimCommand) Reason() string { return c.reason }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c ReleaseClaimCommand) IPAddress() string { return c.ipAddress }

func (c *ReleaseClaimCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *ReleaseClaimCommand) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volunteerID = id
	return nil
}
