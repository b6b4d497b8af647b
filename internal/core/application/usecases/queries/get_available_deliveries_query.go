package queries

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves the open deliveries a volunteer can
// browse, filtered by their service radius and ordered by priority. A
// volunteer who has not configured a service center gets an empty board:
// browsing is deliberately stricter than claiming, which stays permissive for
// volunteers without a location on file.
//
// Example:
//
//	query, err := queries.NewGetAvailableDeliveriesQuery(volunteerID)
//	if err != nil {
//	    return err
//	}
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load the board: %w", err)
//	}
type GetAvailableDeliveriesQuery struct {
	volunteerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a query for a volunteer's board.
func NewGetAvailableDeliveriesQuery(volunteerID kernel.UUID) (GetAvailableDeliveriesQuery, error) {
	if err := volunteerID.Validate(); err != nil {
		return GetAvailableDeliveriesQuery{}, err
	}
	return GetAvailableDeliveriesQuery{
		volunteerID: volunteerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

// VolunteerID returns the browsing volunteer.
func (q GetAvailableDeliveriesQuery) VolunteerID() kernel.UUID { return q.volunteerID }

// GetAvailableDeliveriesQueryResponse is one open delivery on the board. The
// recipient is identified only by display name and general area; the street
// address stays encrypted until the delivery is claimed.
type GetAvailableDeliveriesQueryResponse struct {
	ID                   kernel.UUID
	StoreName            string
	PickupAddress        string
	StoreLocation        *kernel.GeoPoint
	OrderName            string
	PickupTime           time.Time
	EstimatedItems       string
	Priority             int
	CreatedAt            time.Time
	RecipientDisplayName string
	RecipientArea        string
	RecipientLocation    *kernel.GeoPoint
}
