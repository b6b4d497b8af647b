package volunteer

import (
	"errors"
	"fmt"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrVolunteerIsNotConstructed is returned when a Volunteer was not
	// created via NewVolunteer or RestoreVolunteer.
	ErrVolunteerIsNotConstructed = errors.New("Volunteer must be created via NewVolunteer or RestoreVolunteer constructor")

	// ErrNotApproved is returned when an unapproved volunteer attempts an
	// operation reserved for vetted volunteers.
	ErrNotApproved = errors.New("volunteer is not approved")
)

// Volunteer is the fulfiller profile aggregate: vetting state, the service
// area used for geographic matching, and running delivery statistics.
//
// The count of active assignments is deliberately NOT stored here: it is
// derived from delivery rows at decision time so there is no second source of
// truth to drift (see the claim orchestration). The completed-delivery
// counter and average rating are plain statistics, recomputed or incremented
// inside the transaction that changes them.
type Volunteer struct {
	id       kernel.UUID
	fullName string

	// serviceArea is a human-readable area label ("Midtown Sacramento").
	// Geographic eligibility uses serviceLocation/serviceRadiusMiles instead.
	serviceArea        string
	serviceLocation    *kernel.GeoPoint
	serviceRadiusMiles float64
	availabilityNotes  string

	status           Status
	reviewedBy       *kernel.UUID
	reviewedAt       *time.Time
	rejectionReason  string
	suspensionReason string

	totalDeliveries int
	averageRating   decimal.NullDecimal

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewVolunteer creates a pending volunteer application. serviceLocation is
// optional; when present, serviceRadiusMiles must be positive.
func NewVolunteer(
	id kernel.UUID,
	fullName string,
	serviceArea string,
	serviceLocation *kernel.GeoPoint,
	serviceRadiusMiles float64,
	availabilityNotes string,
	createdAt time.Time,
) (*Volunteer, error) {
	v := &Volunteer{
		status:            StatusPending,
		availabilityNotes: availabilityNotes,
		createdAt:         createdAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setFullName(fullName),
		v.setServiceArea(serviceArea),
		v.setServiceLocation(serviceLocation, serviceRadiusMiles),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVolunteer reconstructs a volunteer from persistence.
func RestoreVolunteer(
	id kernel.UUID,
	fullName string,
	serviceArea string,
	serviceLocation *kernel.GeoPoint,
	serviceRadiusMiles float64,
	availabilityNotes string,
	status Status,
	reviewedBy *kernel.UUID,
	reviewedAt *time.Time,
	rejectionReason string,
	suspensionReason string,
	totalDeliveries int,
	averageRating decimal.NullDecimal,
	createdAt time.Time,
) (*Volunteer, error) {
	v := &Volunteer{
		availabilityNotes: availabilityNotes,
		reviewedBy:        reviewedBy,
		reviewedAt:        reviewedAt,
		rejectionReason:   rejectionReason,
		suspensionReason:  suspensionReason,
		averageRating:     averageRating,
		createdAt:         createdAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setFullName(fullName),
		v.setServiceArea(serviceArea),
		v.setServiceLocation(serviceLocation, serviceRadiusMiles),
		v.setStatus(status),
	); err != nil {
		return nil, err
	}

	if totalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidError("totalDeliveries")
	}
	v.totalDeliveries = totalDeliveries

	return v, nil
}

// Validate ensures the volunteer was built through a constructor.
func (v *Volunteer) Validate() error {
	if v == nil {
		return ErrVolunteerIsNotConstructed
	}
	return v.guard.Validate(ErrVolunteerIsNotConstructed)
}

// IsEqual compares volunteers by identity.
func (v *Volunteer) IsEqual(other *Volunteer) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the volunteer's unique identifier.
func (v *Volunteer) ID() kernel.UUID { return v.id }

// FullName returns the volunteer's name.
func (v *Volunteer) FullName() string { return v.fullName }

// ServiceArea returns the human-readable area label.
func (v *Volunteer) ServiceArea() string { return v.serviceArea }

// ServiceLocation returns the configured service center, or nil when the
// volunteer has not set one.
func (v *Volunteer) ServiceLocation() *kernel.GeoPoint { return v.serviceLocation }

// ServiceRadiusMiles returns the matching radius around the service center.
// Meaningless when ServiceLocation is nil.
func (v *Volunteer) ServiceRadiusMiles() float64 { return v.serviceRadiusMiles }

// AvailabilityNotes returns the free-text availability description.
func (v *Volunteer) AvailabilityNotes() string { return v.availabilityNotes }

// Status returns the vetting status.
func (v *Volunteer) Status() Status { return v.status }

// ReviewedBy returns the admin who last reviewed the application, if any.
func (v *Volunteer) ReviewedBy() *kernel.UUID { return v.reviewedBy }

// ReviewedAt returns when the application was last reviewed, if ever.
func (v *Volunteer) ReviewedAt() *time.Time { return v.reviewedAt }

// RejectionReason returns the reason recorded on rejection.
func (v *Volunteer) RejectionReason() string { return v.rejectionReason }

// SuspensionReason returns the reason recorded on suspension.
func (v *Volunteer) SuspensionReason() string { return v.suspensionReason }

// TotalDeliveries returns the lifetime completed-delivery count.
func (v *Volunteer) TotalDeliveries() int { return v.totalDeliveries }

// AverageRating returns the aggregate rating; invalid until first rated.
func (v *Volunteer) AverageRating() decimal.NullDecimal { return v.averageRating }

// CreatedAt returns the application timestamp.
func (v *Volunteer) CreatedAt() time.Time { return v.createdAt }

// HasServiceLocation reports whether a service center is configured.
func (v *Volunteer) HasServiceLocation() bool {
	return v.serviceLocation != nil
}

// Approve marks the application approved. Valid from pending or suspended
// (reinstatement); an earlier rejection reason is cleared.
func (v *Volunteer) Approve(adminID kernel.UUID, at time.Time) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if v.status != StatusPending && v.status != StatusSuspended {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s cannot be approved", v.status))
	}

	v.status = StatusApproved
	v.reviewedBy = &adminID
	v.reviewedAt = &at
	v.rejectionReason = ""
	v.suspensionReason = ""
	return nil
}

// Reject declines a pending application.
func (v *Volunteer) Reject(adminID kernel.UUID, reason string, at time.Time) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if v.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s cannot be rejected", v.status))
	}

	v.status = StatusRejected
	v.reviewedBy = &adminID
	v.reviewedAt = &at
	v.rejectionReason = reason
	return nil
}

// Suspend bars an approved volunteer from claiming until reinstated.
func (v *Volunteer) Suspend(adminID kernel.UUID, reason string, at time.Time) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if v.status != StatusApproved {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s cannot be suspended", v.status))
	}

	v.status = StatusSuspended
	v.reviewedBy = &adminID
	v.reviewedAt = &at
	v.suspensionReason = reason
	return nil
}

// RecordCompletedDelivery increments the lifetime delivery counter. Called in
// the same transaction as the completing status transition.
func (v *Volunteer) RecordCompletedDelivery() {
	v.totalDeliveries++
}

// SetAverageRating replaces the aggregate rating with a freshly recomputed
// value (average of all rating rows, two decimal places).
func (v *Volunteer) SetAverageRating(avg decimal.Decimal) {
	rounded := avg.Round(2)
	v.averageRating = decimal.NewNullDecimal(rounded)
}

func (v *Volunteer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Volunteer) setFullName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("fullName")
	}
	v.fullName = name
	return nil
}

func (v *Volunteer) setServiceArea(area string) error {
	if area == "" {
		return errs.NewValueIsRequiredError("serviceArea")
	}
	v.serviceArea = area
	return nil
}

func (v *Volunteer) setServiceLocation(location *kernel.GeoPoint, radiusMiles float64) error {
	if location == nil {
		v.serviceLocation = nil
		v.serviceRadiusMiles = 0
		return nil
	}
	if err := location.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("serviceLocation", err)
	}
	if radiusMiles <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("serviceRadiusMiles",
			fmt.Errorf("%f is not greater than 0", radiusMiles))
	}
	v.serviceLocation = location
	v.serviceRadiusMiles = radiusMiles
	return nil
}

func (v *Volunteer) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	v.status = s
	return nil
}
