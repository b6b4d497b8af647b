package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryAuditQueryHandler reads a delivery's audit trail from the
// database, oldest entry first.
type GetDeliveryAuditQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryAuditQueryHandler creates a handler for delivery audit
// queries.
func NewGetDeliveryAuditQueryHandler(db *gorm.DB) GetDeliveryAuditQueryHandler {
	return GetDeliveryAuditQueryHandler{db: db}
}

// Handle executes the audit query. An unknown delivery yields an empty slice,
// not an error: the trail is the source of truth and an empty trail is a
// valid answer.
func (h GetDeliveryAuditQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryAuditQuery,
) ([]AuditEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, action, delivery_id, recipient_id, volunteer_id, admin_id,
		       details, ip_address, occurred_at
		FROM audit_entries
		WHERE delivery_id = ?
		ORDER BY occurred_at ASC, id ASC
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAuditEntries(rows)
}

// scanAuditEntries maps audit rows to responses. Shared by the delivery and
// party audit handlers.
func scanAuditEntries(rows *sql.Rows) ([]AuditEntryResponse, error) {
	entries := make([]AuditEntryResponse, 0)

	for rows.Next() {
		var (
			id                                         uuid.UUID
			actionStr                                  string
			deliveryID, recipientID, volunteerID, admn uuid.NullUUID
			details                                    []byte
			resp                                       AuditEntryResponse
		)

		err := rows.Scan(
			&id,
			&actionStr,
			&deliveryID,
			&recipientID,
			&volunteerID,
			&admn,
			&details,
			&resp.IPAddress,
			&resp.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.Action, err = audit.ActionFromString(actionStr)
		if err != nil {
			return nil, err
		}

		if resp.DeliveryID, err = optionalUUID(deliveryID); err != nil {
			return nil, err
		}
		if resp.RecipientID, err = optionalUUID(recipientID); err != nil {
			return nil, err
		}
		if resp.VolunteerID, err = optionalUUID(volunteerID); err != nil {
			return nil, err
		}
		if resp.AdminID, err = optionalUUID(admn); err != nil {
			return nil, err
		}

		if len(details) > 0 {
			if err = json.Unmarshal(details, &resp.Details); err != nil {
				return nil, err
			}
		}

		entries = append(entries, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// optionalUUID builds a kernel UUID pointer from a nullable column.
func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
