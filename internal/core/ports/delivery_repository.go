package ports

import (
	"context"
	"time"

	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// ClaimIfOpen atomically assigns the delivery to the volunteer if and
	// only if it is still open. It issues a single conditional write and
	// reports whether this caller won; a false result with nil error means
	// someone else claimed first, or the delivery left the open status.
	ClaimIfOpen(ctx context.Context, id kernel.UUID, volunteerID kernel.UUID, at time.Time) (bool, error)

	// GetAllOpen retrieves open deliveries ordered by priority descending,
	// then creation time ascending.
	GetAllOpen(ctx context.Context) ([]*delivery.Delivery, error)

	// GetActiveForVolunteer retrieves the volunteer's claimed and picked-up
	// deliveries.
	GetActiveForVolunteer(ctx context.Context, volunteerID kernel.UUID) ([]*delivery.Delivery, error)

	// CountActiveForVolunteer counts the volunteer's claimed and picked-up
	// deliveries. Used for the capacity check so the count is always read
	// inside the claiming transaction.
	CountActiveForVolunteer(ctx context.Context, volunteerID kernel.UUID) (int, error)

	// GetActiveForRecipient retrieves the recipient's open, claimed, and
	// picked-up deliveries.
	GetActiveForRecipient(ctx context.Context, recipientID kernel.UUID) ([]*delivery.Delivery, error)
}
