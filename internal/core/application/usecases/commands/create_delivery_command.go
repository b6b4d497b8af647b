package commands

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrStoreNameIsRequired     = errors.New("store name is required")
	ErrPickupAddressIsRequired = errors.New("pickup address is required")
	ErrOrderNameIsRequired     = errors.New("order name is required")
	ErrPickupTimeIsRequired    = errors.New("pickup time is required")
)

// CreateDeliveryCommand represents a recipient's request for a new grocery
// delivery: where the prepaid order waits and when it can be picked up.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID     kernel.UUID
	recipientID    kernel.UUID
	storeName      string
	pickupAddress  string
	orderName      string
	pickupTime     time.Time
	estimatedItems string
	ipAddress      string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to post a delivery request.
// estimatedItems and ipAddress are optional.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	recipientID kernel.UUID,
	storeName string,
	pickupAddress string,
	orderName string,
	pickupTime time.Time,
	estimatedItems string,
	ipAddress string,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		estimatedItems: estimatedItems,
		ipAddress:      ipAddress,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setRecipientID(recipientID),
		cmd.setStoreName(storeName),
		cmd.setPickupAddress(pickupAddress),
		cmd.setOrderName(orderName),
		cmd.setPickupTime(pickupTime),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// RecipientID returns the requesting recipient.
func (c CreateDeliveryCommand) RecipientID() kernel.UUID { return c.recipientID }

// StoreName returns the store holding the prepaid order.
func (c CreateDeliveryCommand) StoreName() string { return c.storeName }

// PickupAddress returns the store's street address.
func (c CreateDeliveryCommand) PickupAddress() string { return c.pickupAddress }

// OrderName returns the name the order is held under.
func (c CreateDeliveryCommand) OrderName() string { return c.orderName }

// PickupTime returns when the order can be collected.
func (c CreateDeliveryCommand) PickupTime() time.Time { return c.pickupTime }

// EstimatedItems returns the free-text size hint, possibly empty.
func (c CreateDeliveryCommand) EstimatedItems() string { return c.estimatedItems }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c CreateDeliveryCommand) IPAddress() string { return c.ipAddress }

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recipientID = id
	return nil
}

func (c *CreateDeliveryCommand) setStoreName(name string) error {
	if name == "" {
		return ErrStoreNameIsRequired
	}
	c.storeName = name
	return nil
}

func (c *CreateDeliveryCommand) setPickupAddress(address string) error {
	if address == "" {
		return ErrPickupAddressIsRequired
	}
	c.pickupAddress = address
	return nil
}

func (c *CreateDeliveryCommand) setOrderName(name string) error {
	if name == "" {
		return ErrOrderNameIsRequired
	}
	c.orderName = name
	return nil
}

func (c *CreateDeliveryCommand) setPickupTime(t time.Time) error {
	if t.IsZero() {
		return ErrPickupTimeIsRequired
	}
	c.pickupTime = t
	return nil
}
