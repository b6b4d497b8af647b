package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetPartyAuditQueryHandler reads the recent audit history of one volunteer
// or recipient, newest entry first.
type GetPartyAuditQueryHandler struct {
	db *gorm.DB
}

// NewGetPartyAuditQueryHandler creates a handler for party audit queries.
func NewGetPartyAuditQueryHandler(db *gorm.DB) GetPartyAuditQueryHandler {
	return GetPartyAuditQueryHandler{db: db}
}

// Handle executes the party audit query.
func (h GetPartyAuditQueryHandler) Handle(
	ctx context.Context,
	query GetPartyAuditQuery,
) ([]AuditEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column := "volunteer_id"
	if query.Party() == PartyRecipient {
		column = "recipient_id"
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, action, delivery_id, recipient_id, volunteer_id, admin_id,
		       details, ip_address, occurred_at
		FROM audit_entries
		WHERE `+column+` = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?
	`, query.PartyID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAuditEntries(rows)
}
