package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var (
	ErrCreateVolunteerCommandIsNotConstructed = errors.New(
		"CreateVolunteerCommand must be created via NewCreateVolunteerCommand constructor",
	)
	ErrFullNameIsRequired    = errors.New("full name is required")
	ErrServiceAreaIsRequired = errors.New("service area is required")
)

// CreateVolunteerCommand represents a new volunteer application. The
// application starts in the pending status and cannot claim until an admin
// approves it.
type CreateVolunteerCommand struct { //nolint:recvcheck //using for validation
	volunteerID       kernel.UUID
	fullName          string
	serviceArea       string
	serviceAddress    string
	serviceRadius     float64
	availabilityNotes string
	ipAddress         string

	guard guard.ConstructorGuard
}

// NewCreateVolunteerCommand creates a command to register a volunteer.
// serviceAddress is optional; when set, serviceRadius must be positive and
// the address is geocoded into the volunteer's service center.
func NewCreateVolunteerCommand(
	volunteerID kernel.UUID,
	fullName string,
	serviceArea string,
	serviceAddress string,
	serviceRadius float64,
	availabilityNotes string,
	ipAddress string,
) (CreateVolunteerCommand, error) {
	cmd := CreateVolunteerCommand{
		serviceAddress:    serviceAddress,
		serviceRadius:     serviceRadius,
		availabilityNotes: availabilityNotes,
		ipAddress:         ipAddress,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolunteerID(volunteerID),
		cmd.setFullName(fullName),
		cmd.setServiceArea(serviceArea),
	); err != nil {
		return CreateVolunteerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateVolunteerCommand) Validate() error {
	return c.guard.Validate(ErrCreateVolunteerCommandIsNotConstructed)
}

// VolunteerID returns the identifier for the new volunteer.
func (c CreateVolunteerCommand) VolunteerID() kernel.UUID { return c.volunteerID }

// FullName returns the applicant's name.
func (c CreateVolunteerCommand) FullName() string { return c.fullName }

// ServiceArea returns the human-readable area label.
func (c CreateVolunteerCommand) ServiceArea() string { return c.serviceArea }

// ServiceAddress returns the address to geocode into the service center,
// possibly empty.
func (c CreateVolunteerCommand) ServiceAddress() string { return c.serviceAddress }

// ServiceRadius returns the matching radius in miles.
func (c CreateVolunteerCommand) ServiceRadius() float64 { return c.serviceRadius }

// AvailabilityNotes returns the free-text availability description.
func (c CreateVolunteerCommand) AvailabilityNotes() string { return c.availabilityNotes }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c CreateVolunteerCommand) IPAddress() string { return c.ipAddress }

func (c *CreateVolunteerCommand) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volunteerID = id
	return nil
}

func (c *CreateVolunteerCommand) setFullName(name string) error {
	if name == "" {
		return ErrFullNameIsRequired
	}
	c.fullName = name
	return nil
}

func (c *CreateVolunteerCommand) setServiceArea(area string) error {
	if area == "" {
		return ErrServiceAreaIsRequired
	}
	c.serviceArea = area
	return nil
}
