package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetVolunteerBoardQueryHandler assembles a volunteer's dashboard from the
// volunteers, deliveries, audit and rating tables.
type GetVolunteerBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetVolunteerBoardQueryHandler creates a handler for dashboard queries.
func NewGetVolunteerBoardQueryHandler(db *gorm.DB) GetVolunteerBoardQueryHandler {
	return GetVolunteerBoardQueryHandler{db: db}
}

// Handle executes the dashboard query. Returns errs.ErrObjectNotFound for an
// unknown volunteer.
func (h GetVolunteerBoardQueryHandler) Handle(
	ctx context.Context,
	query GetVolunteerBoardQuery,
) (GetVolunteerBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetVolunteerBoardQueryResponse{}, err
	}

	resp, err := h.loadSummary(ctx, query.VolunteerID())
	if err != nil {
		return GetVolunteerBoardQueryResponse{}, err
	}

	if resp.Active, err = h.loadActive(ctx, query.VolunteerID()); err != nil {
		return GetVolunteerBoardQueryResponse{}, err
	}
	if resp.RecentCompleted, err = h.loadRecentCompleted(ctx, query.VolunteerID()); err != nil {
		return GetVolunteerBoardQueryResponse{}, err
	}

	return resp, nil
}

func (h GetVolunteerBoardQueryHandler) loadSummary(
	ctx context.Context,
	volunteerID kernel.UUID,
) (GetVolunteerBoardQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT full_name, status, total_deliveries, average_rating
		FROM volunteers
		WHERE id = ?
	`, volunteerID.Bytes()).Row()

	var resp GetVolunteerBoardQueryResponse
	var average sql.NullString
	err := row.Scan(&resp.FullName, &resp.Status, &resp.TotalDeliveries, &average)
	if errors.Is(err, sql.ErrNoRows) {
		return GetVolunteerBoardQueryResponse{}, errs.ErrObjectNotFound
	}
	if err != nil {
		return GetVolunteerBoardQueryResponse{}, err
	}

	resp.VolunteerID = volunteerID
	if average.Valid {
		value, decErr := decimal.NewFromString(average.String)
		if decErr != nil {
			return GetVolunteerBoardQueryResponse{}, decErr
		}
		resp.AverageRating = decimal.NewNullDecimal(value)
	}

	return resp, nil
}

func (h GetVolunteerBoardQueryHandler) loadActive(
	ctx context.Context,
	volunteerID kernel.UUID,
) ([]BoardDelivery, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, store_name, pickup_address, order_name, pickup_time,
		       estimated_items, status, claimed_at
		FROM deliveries
		WHERE volunteer_id = ? AND status IN ('claimed', 'picked_up')
		ORDER BY claimed_at ASC
	`, volunteerID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	active := make([]BoardDelivery, 0)
	for rows.Next() {
		var id uuid.UUID
		var claimedAt sql.NullTime
		var entry BoardDelivery

		err = rows.Scan(
			&id,
			&entry.StoreName,
			&entry.PickupAddress,
			&entry.OrderName,
			&entry.PickupTime,
			&entry.EstimatedItems,
			&entry.Status,
			&claimedAt,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if claimedAt.Valid {
			at := claimedAt.Time
			entry.ClaimedAt = &at
		}

		active = append(active, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return active, nil
}

// loadRecentCompleted reconstructs the completed section from the audit
// trail, since completed deliveries no longer reference their fulfiller.
func (h GetVolunteerBoardQueryHandler) loadRecentCompleted(
	ctx context.Context,
	volunteerID kernel.UUID,
) ([]BoardCompletion, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT d.id, d.store_name, d.order_name, a.occurred_at, rt.score
		FROM audit_entries a
		JOIN deliveries d ON d.id = a.delivery_id
		LEFT JOIN ratings rt ON rt.delivery_id = d.id
		WHERE a.action = 'delivery_completed' AND a.volunteer_id = ?
		ORDER BY a.occurred_at DESC
		LIMIT ?
	`, volunteerID.Bytes(), RecentCompletionsLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make([]BoardCompletion, 0)
	for rows.Next() {
		var id uuid.UUID
		var occurred time.Time
		var score sql.NullInt64
		var entry BoardCompletion

		err = rows.Scan(&id, &entry.StoreName, &entry.OrderName, &occurred, &score)
		if err != nil {
			return nil, err
		}

		if entry.DeliveryID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		entry.CompletedAt = occurred
		if score.Valid {
			value := int(score.Int64)
			entry.RatingScore = &value
		}

		completed = append(completed, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return completed, nil
}
