package commands

import (
	"context"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/volunteer"
	"communitydelivery/internal/core/ports"
)

// CreateVolunteerCommandHandler handles volunteer registration. When the
// applicant supplies a service address it is geocoded into their service
// center, and a failed lookup fails the registration with
// ports.ErrExternalLookupFailed. Applicants who supply no service address
// register without a center and stay eligible everywhere under the
// permissive matching default.
type CreateVolunteerCommandHandler struct {
	uowFactory VolunteerUoWFactory
	geocoder   ports.Geocoder
}

// NewCreateVolunteerCommandHandler creates a handler for volunteer
// registration.
func NewCreateVolunteerCommandHandler(
	uowFactory VolunteerUoWFactory,
	geocoder ports.Geocoder,
) CreateVolunteerCommandHandler {
	return CreateVolunteerCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

// Handle processes the registration command.
func (h CreateVolunteerCommandHandler) Handle(ctx context.Context, cmd CreateVolunteerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var serviceLocation *kernel.GeoPoint
	if cmd.ServiceAddress() != "" {
		location, err := h.geocoder.Geocode(ctx, cmd.ServiceAddress())
		if err != nil {
			return err
		}
		serviceLocation = &location
	}

	radius := cmd.ServiceRadius()
	if serviceLocation == nil {
		radius = 0
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	applicant, err := volunteer.NewVolunteer(
		cmd.VolunteerID(),
		cmd.FullName(),
		cmd.ServiceArea(),
		serviceLocation,
		radius,
		cmd.AvailabilityNotes(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.VolunteerRepository().Add(ctx, applicant); err != nil {
		return err
	}

	volunteerID := cmd.VolunteerID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionVolunteerRegistered,
		nil, nil, &volunteerID, nil,
		map[string]any{"service_area": cmd.ServiceArea()},
		cmd.IPAddress(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
