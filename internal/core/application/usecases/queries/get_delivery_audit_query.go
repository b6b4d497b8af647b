package queries

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var ErrGetDeliveryAuditQueryIsNotConstructed = errors.New(
	"GetDeliveryAuditQuery must be created via NewGetDeliveryAuditQuery constructor",
)

// GetDeliveryAuditQuery retrieves the full audit history of one delivery in
// chronological order.
type GetDeliveryAuditQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryAuditQuery creates a query for a delivery's audit trail.
func NewGetDeliveryAuditQuery(deliveryID kernel.UUID) (GetDeliveryAuditQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryAuditQuery{}, err
	}
	return GetDeliveryAuditQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryAuditQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryAuditQueryIsNotConstructed)
}

// DeliveryID returns the delivery whose history is requested.
func (q GetDeliveryAuditQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// AuditEntryResponse is one audit trail entry as exposed to readers.
type AuditEntryResponse struct {
	ID          kernel.UUID
	Action      audit.Action
	DeliveryID  *kernel.UUID
	RecipientID *kernel.UUID
	VolunteerID *kernel.UUID
	AdminID     *kernel.UUID
	Details     map[string]any
	IPAddress   string
	OccurredAt  time.Time
}
