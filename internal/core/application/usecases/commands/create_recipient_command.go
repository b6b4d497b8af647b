package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var (
	ErrCreateRecipientCommandIsNotConstructed = errors.New(
		"CreateRecipientCommand must be created via NewCreateRecipientCommand constructor",
	)
	ErrDisplayNameIsRequired = errors.New("display name is required")
	ErrAddressIsRequired     = errors.New("address is required")
	ErrGeneralAreaIsRequired = errors.New("general area is required")
)

// CreateRecipientCommand represents a new recipient registration. The
// address, phone, and notes arrive in the clear and exist only for the
// duration of handling; they are encrypted before anything is stored.
type CreateRecipientCommand struct { //nolint:recvcheck //using for validation
	recipientID kernel.UUID
	displayName string
	generalArea string
	address     string
	phone       string
	notes       string
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewCreateRecipientCommand creates a command to register a recipient.
// phone and notes are optional.
func NewCreateRecipientCommand(
	recipientID kernel.UUID,
	displayName string,
	generalArea string,
	address string,
	phone string,
	notes string,
	ipAddress string,
) (CreateRecipientCommand, error) {
	cmd := CreateRecipientCommand{
		phone:     phone,
		notes:     notes,
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecipientID(recipientID),
		cmd.setDisplayName(displayName),
		cmd.setGeneralArea(generalArea),
		cmd.setAddress(address),
	); err != nil {
		return CreateRecipientCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRecipientCommand) Validate() error {
	return c.guard.Validate(ErrCreateRecipientCommandIsNotConstructed)
}

// RecipientID returns the identifier for the new recipient.
func (c CreateRecipientCommand) RecipientID() kernel.UUID { return c.recipientID }

// DisplayName returns the name shown to volunteers.
func (c CreateRecipientCommand) DisplayName() string { return c.displayName }

// GeneralArea returns the coarse locality label.
func (c CreateRecipientCommand) GeneralArea() string { return c.generalArea }

// Address returns the plaintext street address.
func (c CreateRecipientCommand) Address() string { return c.address }

// Phone returns the plaintext phone number, possibly empty.
func (c CreateRecipientCommand) Phone() string { return c.phone }

// Notes returns the plaintext delivery notes, possibly empty.
func (c CreateRecipientCommand) Notes() string { return c.notes }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c CreateRecipientCommand) IPAddress() string { return c.ipAddress }

func (c *CreateRecipientCommand) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recipientID = id
	return nil
}

func (c *CreateRecipientCommand) setDisplayName(name string) error {
	if name == "" {
		return ErrDisplayNameIsRequired
	}
	c.displayName = name
	return nil
}

func (c *CreateRecipientCommand) setGeneralArea(area string) error {
	if area == "" {
		return ErrGeneralAreaIsRequired
	}
	c.generalArea = area
	return nil
}

func (c *CreateRecipientCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	c.address = address
	return nil
}
