package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var (
	ErrCancelByAdminCommandIsNotConstructed = errors.New(
		"CancelByAdminCommand must be created via NewCancelByAdminCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// CancelByAdminCommand represents an admin canceling a delivery on behalf of
// the community, for example when a store closes or a request is abusive.
type CancelByAdminCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	adminID    kernel.UUID
	reason     string
	ipAddress  string

	guard guard.ConstructorGuard
}

// NewCancelByAdminCommand creates an admin cancellation command. Unlike
// recipient cancellations, the reason is mandatory.
func NewCancelByAdminCommand(
	deliveryID kernel.UUID,
	adminID kernel.UUID,
	reason string,
	ipAddress string,
) (CancelByAdminCommand, error) {
	cmd := CancelByAdminCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAdminID(adminID),
		cmd.setReason(reason),
	); err != nil {
		return CancelByAdminCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelByAdminCommand) Validate() error {
	return c.guard.Validate(ErrCancelByAdminCommandIsNotConstructed)
}

// DeliveryID returns the delivery being canceled.
func (c CancelByAdminCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// AdminID returns the acting admin.
func (c CancelByAdminCommand) AdminID() kernel.UUID { return c.adminID }

// Reason returns the mandatory cancellation reason.
func (c CancelByAdminCommand) Reason() string { return c.reason }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c CancelByAdminCommand) IPAddress() string { return c.ipAddress }

func (c *CancelByAdminCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CancelByAdminCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}

func (c *CancelByAdminCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	c.reason = reason
	return nil
}
