package queries

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetVolunteerBoardQueryIsNotConstructed = errors.New(
	"GetVolunteerBoardQuery must be created via NewGetVolunteerBoardQuery constructor",
)

// RecentCompletionsLimit bounds the completed section of the volunteer board.
const RecentCompletionsLimit = 10

// GetVolunteerBoardQuery retrieves a volunteer's personal dashboard: their
// vetting status, lifetime stats, current runs, and recent completions.
type GetVolunteerBoardQuery struct {
	volunteerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetVolunteerBoardQuery creates a dashboard query for one volunteer.
func NewGetVolunteerBoardQuery(volunteerID kernel.UUID) (GetVolunteerBoardQuery, error) {
	if err := volunteerID.Validate(); err != nil {
		return GetVolunteerBoardQuery{}, err
	}
	return GetVolunteerBoardQuery{
		volunteerID: volunteerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVolunteerBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetVolunteerBoardQueryIsNotConstructed)
}

// VolunteerID returns the volunteer whose board is requested.
func (q GetVolunteerBoardQuery) VolunteerID() kernel.UUID { return q.volunteerID }

// BoardDelivery is one delivery the volunteer currently has in flight.
type BoardDelivery struct {
	ID             kernel.UUID
	StoreName      string
	PickupAddress  string
	OrderName      string
	PickupTime     time.Time
	EstimatedItems string
	Status         string
	ClaimedAt      *time.Time
}

// BoardCompletion is one recently completed delivery. Completed deliveries
// drop their assignment, so this section is reconstructed from the completion
// entries in the audit trail, joined to whatever rating the recipient left.
type BoardCompletion struct {
	DeliveryID  kernel.UUID
	StoreName   string
	OrderName   string
	CompletedAt time.Time
	RatingScore *int
}

// GetVolunteerBoardQueryResponse is the assembled dashboard.
type GetVolunteerBoardQueryResponse struct {
	VolunteerID     kernel.UUID
	FullName        string
	Status          string
	TotalDeliveries int
	AverageRating   decimal.NullDecimal
	Active          []BoardDelivery
	RecentCompleted []BoardCompletion
}
