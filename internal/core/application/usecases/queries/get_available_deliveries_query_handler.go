package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler reads the open delivery board from the
// database. Radius filtering happens in Go through the kernel's haversine so
// the read path and the claim path cannot disagree about distance.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for board queries.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle executes the board query. Open deliveries are ordered priority DESC,
// created_at ASC. Deliveries missing a store or recipient coordinate are kept
// on the board; only a coordinate known to be outside the volunteer's radius
// excludes one.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]GetAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	center, radius, err := h.loadServiceCenter(ctx, query.VolunteerID())
	if err != nil {
		return nil, err
	}

	responses := make([]GetAvailableDeliveriesQueryResponse, 0)
	if center == nil {
		return responses, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.store_name,
			d.pickup_address,
			d.store_lat,
			d.store_lng,
			d.order_name,
			d.pickup_time,
			d.estimated_items,
			d.priority,
			d.created_at,
			r.display_name,
			r.general_area,
			r.lat,
			r.lng
		FROM deliveries d
		JOIN recipients r ON r.id = d.recipient_id
		WHERE d.status = 'open'
		ORDER BY d.priority DESC, d.created_at ASC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                           uuid.UUID
			storeLat, storeLng, lat, lng sql.NullFloat64
			pickupTime, createdAt        time.Time
			resp                         GetAvailableDeliveriesQueryResponse
		)

		err = rows.Scan(
			&id,
			&resp.StoreName,
			&resp.PickupAddress,
			&storeLat,
			&storeLng,
			&resp.OrderName,
			&pickupTime,
			&resp.EstimatedItems,
			&resp.Priority,
			&createdAt,
			&resp.RecipientDisplayName,
			&resp.RecipientArea,
			&lat,
			&lng,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.PickupTime = pickupTime
		resp.CreatedAt = createdAt

		resp.StoreLocation, err = optionalGeoPoint(storeLat, storeLng)
		if err != nil {
			return nil, err
		}
		resp.RecipientLocation, err = optionalGeoPoint(lat, lng)
		if err != nil {
			return nil, err
		}

		within, reachErr := withinServiceRadius(*center, radius,
			resp.StoreLocation, resp.RecipientLocation)
		if reachErr != nil {
			return nil, reachErr
		}
		if within {
			responses = append(responses, resp)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// loadServiceCenter returns the volunteer's configured service center, or nil
// when they never set one.
func (h GetAvailableDeliveriesQueryHandler) loadServiceCenter(
	ctx context.Context,
	volunteerID kernel.UUID,
) (*kernel.GeoPoint, float64, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT service_lat, service_lng, service_radius_miles
		FROM volunteers
		WHERE id = ?
	`, volunteerID.Bytes()).Row()

	var serviceLat, serviceLng sql.NullFloat64
	var radius float64
	if err := row.Scan(&serviceLat, &serviceLng, &radius); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, errs.ErrObjectNotFound
		}
		return nil, 0, err
	}

	center, err := optionalGeoPoint(serviceLat, serviceLng)
	if err != nil {
		return nil, 0, err
	}
	return center, radius, nil
}

// withinServiceRadius reports whether every known coordinate of the delivery
// lies inside the volunteer's radius. Unknown coordinates do not exclude.
func withinServiceRadius(
	center kernel.GeoPoint,
	radiusMiles float64,
	endpoints ...*kernel.GeoPoint,
) (bool, error) {
	for _, endpoint := range endpoints {
		if endpoint == nil {
			continue
		}
		within, err := endpoint.IsWithinRadius(center, radiusMiles)
		if err != nil {
			return false, err
		}
		if !within {
			return false, nil
		}
	}
	return true, nil
}

// optionalGeoPoint builds a GeoPoint from a nullable coordinate pair.
func optionalGeoPoint(lat, lng sql.NullFloat64) (*kernel.GeoPoint, error) {
	if !lat.Valid || !lng.Valid {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(lat.Float64, lng.Float64)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
