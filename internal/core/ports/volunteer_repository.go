package ports

import (
	"context"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/volunteer"
)

// VolunteerRepository defines the persistence contract for volunteer
// aggregates.
type VolunteerRepository interface {
	// Add persists a new volunteer aggregate to storage.
	Add(ctx context.Context, aggregate *volunteer.Volunteer) error

	// Update persists changes to an existing volunteer aggregate.
	Update(ctx context.Context, aggregate *volunteer.Volunteer) error

	// Get retrieves a volunteer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*volunteer.Volunteer, error)

	// GetAllPending retrieves applications awaiting admin review, oldest
	// first.
	GetAllPending(ctx context.Context) ([]*volunteer.Volunteer, error)
}
