package ports

import (
	"context"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"
)

// AuditRepository defines the append-only persistence contract for the audit
// trail. There is intentionally no update or delete method.
type AuditRepository interface {
	// Append persists a new audit entry. Entries are written in the same
	// transaction as the state change they record.
	Append(ctx context.Context, entry *audit.Entry) error

	// GetForDelivery retrieves every entry referencing the delivery in
	// chronological order.
	GetForDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*audit.Entry, error)

	// GetForVolunteer retrieves the most recent entries referencing the
	// volunteer, newest first, capped at limit.
	GetForVolunteer(ctx context.Context, volunteerID kernel.UUID, limit int) ([]*audit.Entry, error)

	// GetForRecipient retrieves the most recent entries referencing the
	// recipient, newest first, capped at limit.
	GetForRecipient(ctx context.Context, recipientID kernel.UUID, limit int) ([]*audit.Entry, error)

	// CountCompletedForVolunteer counts delivery_completed entries for the
	// volunteer. The trail keeps completion history after the delivery row
	// drops its assignment.
	CountCompletedForVolunteer(ctx context.Context, volunteerID kernel.UUID) (int, error)
}
