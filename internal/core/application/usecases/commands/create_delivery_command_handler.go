package commands

import (
	"context"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/recipient"
	"communitydelivery/internal/core/domain/services"
	"communitydelivery/internal/core/ports"
	"communitydelivery/internal/pkg/errs"
)

var (
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrOutsideOperatingArea = errors.New("address is outside the community operating area")
)

// CreateDeliveryCommandHandler handles the business logic for posting a new
// delivery request. Geocodes the store address, checks the community
// operating boundary, and records the request with an audit entry.
//
// A provider outage fails the operation with
// ports.ErrExternalLookupFailed; it is the one error the caller is expected
// to retry as-is, so it is never degraded into a delivery without
// coordinates.
type CreateDeliveryCommandHandler struct {
	uowFactory  CreateDeliveryUoWFactory
	geocoder    ports.Geocoder
	serviceArea services.ServiceArea
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(
	uowFactory CreateDeliveryUoWFactory,
	geocoder ports.Geocoder,
	serviceArea services.ServiceArea,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory:  uowFactory,
		geocoder:    geocoder,
		serviceArea: serviceArea,
	}
}

// Handle processes the delivery creation command.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	storeLocation, err := h.resolveStoreLocation(ctx, cmd.PickupAddress())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requester, err := uow.RecipientRepository().Get(ctx, cmd.RecipientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRecipientNotFound
	}
	if err != nil {
		return err
	}
	if requester.IsDeleted() {
		return recipient.ErrRecipientDeleted
	}

	now := time.Now().UTC()
	newDelivery, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.RecipientID(),
		cmd.StoreName(),
		cmd.PickupAddress(),
		storeLocation,
		cmd.OrderName(),
		cmd.PickupTime(),
		cmd.EstimatedItems(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return err
	}

	deliveryID := cmd.DeliveryID()
	recipientID := cmd.RecipientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.ActionDeliveryCreated,
		&deliveryID, &recipientID, nil, nil,
		map[string]any{
			"store_name": cmd.StoreName(),
			"order_name": cmd.OrderName(),
		},
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

// resolveStoreLocation geocodes the pickup address and verifies it falls
// inside the operating boundary. A failed lookup surfaces
// ports.ErrExternalLookupFailed so the caller can retry.
func (h CreateDeliveryCommandHandler) resolveStoreLocation(
	ctx context.Context,
	address string,
) (*kernel.GeoPoint, error) {
	location, err := h.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	inside, err := h.serviceArea.Contains(location)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, ErrOutsideOperatingArea
	}

	return &location, nil
}
