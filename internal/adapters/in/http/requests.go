package http

import (
	"time"

	"communitydelivery/internal/core/application/usecases/queries"
	"communitydelivery/internal/core/domain/model/kernel"
)

// Request bodies. Validation tags cover shape only; business rules stay in
// the command constructors.

type createDeliveryRequest struct {
	StoreName      string    `json:"store_name" validate:"required"`
	PickupAddress  string    `json:"pickup_address" validate:"required"`
	OrderName      string    `json:"order_name" validate:"required"`
	PickupTime     time.Time `json:"pickup_time" validate:"required"`
	EstimatedItems string    `json:"estimated_items"`
}

type createVolunteerRequest struct {
	FullName          string  `json:"full_name" validate:"required"`
	ServiceArea       string  `json:"service_area" validate:"required"`
	ServiceAddress    string  `json:"service_address"`
	ServiceRadius     float64 `json:"service_radius_miles" validate:"gte=0"`
	AvailabilityNotes string  `json:"availability_notes"`
}

type createRecipientRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	GeneralArea string `json:"general_area" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type releaseRequest struct {
	Reason string `json:"reason"`
}

type reviewVolunteerRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject suspend"`
	Reason   string `json:"reason"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type submitRatingRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Response bodies.

type createdResponse struct {
	ID string `json:"id"`
}

type geoPointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type availableDeliveryResponse struct {
	ID                   string            `json:"id"`
	StoreName            string            `json:"store_name"`
	PickupAddress        string            `json:"pickup_address"`
	StoreLocation        *geoPointResponse `json:"store_location,omitempty"`
	OrderName            string            `json:"order_name"`
	PickupTime           time.Time         `json:"pickup_time"`
	EstimatedItems       string            `json:"estimated_items,omitempty"`
	Priority             int               `json:"priority"`
	CreatedAt            time.Time         `json:"created_at"`
	RecipientDisplayName string            `json:"recipient_display_name"`
	RecipientArea        string            `json:"recipient_area"`
	RecipientLocation    *geoPointResponse `json:"recipient_location,omitempty"`
}

type contactResponse struct {
	DisplayName string `json:"display_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type auditEntryResponse struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	DeliveryID  *string        `json:"delivery_id,omitempty"`
	RecipientID *string        `json:"recipient_id,omitempty"`
	VolunteerID *string        `json:"volunteer_id,omitempty"`
	AdminID     *string        `json:"admin_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	IPAddress   string         `json:"ip_address,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

type messageResponse struct {
	ID       string     `json:"id"`
	Sender   string     `json:"sender"`
	SenderID string     `json:"sender_id"`
	Content  string     `json:"content"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at,omitempty"`
}

type unreadCountResponse struct {
	Unread int `json:"unread"`
}

type boardDeliveryResponse struct {
	ID             string     `json:"id"`
	StoreName      string     `json:"store_name"`
	PickupAddress  string     `json:"pickup_address"`
	OrderName      string     `json:"order_name"`
	PickupTime     time.Time  `json:"pickup_time"`
	EstimatedItems string     `json:"estimated_items,omitempty"`
	Status         string     `json:"status"`
	ClaimedAt      *time.Time `json:"claimed_at,omitempty"`
}

type boardCompletionResponse struct {
	DeliveryID  string    `json:"delivery_id"`
	StoreName   string    `json:"store_name"`
	OrderName   string    `json:"order_name"`
	CompletedAt time.Time `json:"completed_at"`
	RatingScore *int      `json:"rating_score,omitempty"`
}

type volunteerBoardResponse struct {
	VolunteerID     string                    `json:"volunteer_id"`
	FullName        string                    `json:"full_name"`
	Status          string                    `json:"status"`
	TotalDeliveries int                       `json:"total_deliveries"`
	AverageRating   *string                   `json:"average_rating,omitempty"`
	Active          []boardDeliveryResponse   `json:"active"`
	RecentCompleted []boardCompletionResponse `json:"recent_completed"`
}

func toGeoPointResponse(point *kernel.GeoPoint) *geoPointResponse {
	if point == nil {
		return nil
	}
	return &geoPointResponse{Lat: point.Latitude(), Lng: point.Longitude()}
}

func toOptionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toAuditEntryResponses(entries []queries.AuditEntryResponse) []auditEntryResponse {
	responses := make([]auditEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = auditEntryResponse{
			ID:          entry.ID.String(),
			Action:      entry.Action.String(),
			DeliveryID:  toOptionalID(entry.DeliveryID),
			RecipientID: toOptionalID(entry.RecipientID),
			VolunteerID: toOptionalID(entry.VolunteerID),
			AdminID:     toOptionalID(entry.AdminID),
			Details:     entry.Details,
			IPAddress:   entry.IPAddress,
			OccurredAt:  entry.OccurredAt,
		}
	}
	return responses
}
