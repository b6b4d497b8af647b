package ports

import (
	"context"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/recipient"
)

// RecipientRepository defines the persistence contract for recipient
// aggregates.
type RecipientRepository interface {
	// Add persists a new recipient aggregate to storage.
	Add(ctx context.Context, aggregate *recipient.Recipient) error

	// Update persists changes to an existing recipient aggregate.
	Update(ctx context.Context, aggregate *recipient.Recipient) error

	// Get retrieves a recipient aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error)

	// GetAllInactiveSince retrieves unpurged recipients with no delivery
	// activity after the cutoff. Activity is judged by the creation time of
	// the recipient's most recent delivery, or the registration time when
	// they never requested one.
	GetAllInactiveSince(ctx context.Context, cutoff time.Time) ([]*recipient.Recipient, error)
}
