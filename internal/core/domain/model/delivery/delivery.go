package delivery

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not created
	// through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

	// ErrNotAssigned is returned when a caller attempts an assignee-only
	// transition (pickup, complete, release) on a delivery held by someone
	// else or by no one.
	ErrNotAssigned = errors.New("delivery is not assigned to this volunteer")
)

// Delivery is the aggregate root of the coordination core: one grocery
// pickup-and-drop-off task moving through the lifecycle. All state changes go
// through the transition methods below, which enforce ordering, the
// single-assignee invariant, and the monotonically non-decreasing priority.
//
// Invariants:
//   - volunteerID is non-nil iff status is claimed or picked_up
//   - priority never decreases across the delivery's lifetime
//   - terminal states (completed, canceled) carry no assignment
//   - a delivery is never physically deleted; terminal rows are history
type Delivery struct {
	// id is the unique identifier of the delivery request.
	id kernel.UUID
	// recipientID references the requester. Immutable after creation.
	recipientID kernel.UUID
	// volunteerID is the current assignee, nil unless claimed or picked_up.
	volunteerID *kernel.UUID

	// Pickup details, immutable after creation.
	storeName      string
	pickupAddress  string
	storeLocation  *kernel.GeoPoint
	orderName      string
	pickupTime     time.Time
	estimatedItems string

	// Lifecycle state.
	status             Status
	priority           int
	createdAt          time.Time
	claimedAt          *time.Time
	pickedUpAt         *time.Time
	completedAt        *time.Time
	canceledAt         *time.Time
	canceledBy         Actor
	cancellationReason string

	guard guard.ConstructorGuard
}

// NewDelivery creates an open delivery request at priority zero.
//
// Required: id, recipientID, storeName, pickupAddress, orderName, pickupTime,
// createdAt. Optional: storeLocation (nil when the store could not be
// geocoded) and estimatedItems free text.
func NewDelivery(
	id kernel.UUID,
	recipientID kernel.UUID,
	storeName string,
	pickupAddress string,
	storeLocation *kernel.GeoPoint,
	orderName string,
	pickupTime time.Time,
	estimatedItems string,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:         StatusOpen,
		estimatedItems: estimatedItems,
		createdAt:      createdAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setRecipientID(recipientID),
		d.setStoreName(storeName),
		d.setPickupAddress(pickupAddress),
		d.setStoreLocation(storeLocation),
		d.setOrderName(orderName),
		d.setPickupTime(pickupTime),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistence in whatever
// lifecycle state it was stored, verifying the assignment invariant holds for
// the restored status.
func RestoreDelivery(
	id kernel.UUID,
	recipientID kernel.UUID,
	volunteerID *kernel.UUID,
	storeName string,
	pickupAddress string,
	storeLocation *kernel.GeoPoint,
	orderName string,
	pickupTime time.Time,
	estimatedItems string,
	status Status,
	priority int,
	createdAt time.Time,
	claimedAt, pickedUpAt, completedAt, canceledAt *time.Time,
	canceledBy Actor,
	cancellationReason string,
) (*Delivery, error) {
	d := &Delivery{
		estimatedItems:     estimatedItems,
		priority:           priority,
		createdAt:          createdAt,
		claimedAt:          claimedAt,
		pickedUpAt:         pickedUpAt,
		completedAt:        completedAt,
		canceledAt:         canceledAt,
		canceledBy:         canceledBy,
		cancellationReason: cancellationReason,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setRecipientID(recipientID),
		d.setStoreName(storeName),
		d.setPickupAddress(pickupAddress),
		d.setStoreLocation(storeLocation),
		d.setOrderName(orderName),
		d.setPickupTime(pickupTime),
		d.setStatus(status),
		d.setVolunteerID(volunteerID),
	); err != nil {
		return nil, err
	}

	if priority < 0 {
		return nil, errs.NewValueIsInvalidError("priority")
	}

	return d, nil
}

// Validate ensures the delivery was built through a constructor and that the
// assignment invariant holds.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}
	return d.status.ValidateCanHaveVolunteer(d.volunteerID != nil)
}

// IsEqual compares deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// RecipientID returns the requester reference.
func (d *Delivery) RecipientID() kernel.UUID { return d.recipientID }

// VolunteerID returns the current assignee, or nil when unassigned.
func (d *Delivery) VolunteerID() *kernel.UUID { return d.volunteerID }

// StoreName returns the pickup store name.
func (d *Delivery) StoreName() string { return d.storeName }

// PickupAddress returns the store street address (not sensitive).
func (d *Delivery) PickupAddress() string { return d.pickupAddress }

// StoreLocation returns the store coordinates, or nil when never geocoded.
func (d *Delivery) StoreLocation() *kernel.GeoPoint { return d.storeLocation }

// OrderName returns the name the grocery order is under.
func (d *Delivery) OrderName() string { return d.orderName }

// PickupTime returns the scheduled pickup time.
func (d *Delivery) PickupTime() time.Time { return d.pickupTime }

// EstimatedItems returns the free-text size estimate ("about 10 items").
func (d *Delivery) EstimatedItems() string { return d.estimatedItems }

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status { return d.status }

// Priority returns the pool sort key. Higher shows first; never decreases.
func (d *Delivery) Priority() int { return d.priority }

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// ClaimedAt returns when the current claim was made, nil if unclaimed.
func (d *Delivery) ClaimedAt() *time.Time { return d.claimedAt }

// PickedUpAt returns when groceries were collected, nil before pickup.
func (d *Delivery) PickedUpAt() *time.Time { return d.pickedUpAt }

// CompletedAt returns the completion timestamp, nil unless completed.
func (d *Delivery) CompletedAt() *time.Time { return d.completedAt }

// CanceledAt returns the cancellation timestamp, nil unless canceled.
func (d *Delivery) CanceledAt() *time.Time { return d.canceledAt }

// CanceledBy returns the role that canceled the delivery, ActorUnknown otherwise.
func (d *Delivery) CanceledBy() Actor { return d.canceledBy }

// CancellationReason returns the free-text cancellation reason, if any.
func (d *Delivery) CancellationReason() string { return d.cancellationReason }

// Claim assigns the delivery to a volunteer. Only an open delivery can be
// claimed; the repository layer additionally guards the same transition with
// a conditional write so concurrent claimants cannot both succeed.
//
// Capacity, vetting, and service-area checks belong to the claim
// orchestration, not to the aggregate.
func (d *Delivery) Claim(volunteerID kernel.UUID, at time.Time) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Claim()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.volunteerID = &volunteerID
	d.claimedAt = &at
	return nil
}

// MarkPickedUp records that the assigned volunteer collected the groceries.
// Only the current assignee may call it, and only from claimed.
func (d *Delivery) MarkPickedUp(volunteerID kernel.UUID, at time.Time) error {
	if err := d.requireAssignee(volunteerID); err != nil {
		return err
	}

	newStatus, err := d.status.MarkPickedUp()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.pickedUpAt = &at
	return nil
}

// Complete finishes the delivery. Only the current assignee may call it, from
// claimed or picked_up. The assignment is cleared: terminal states never hold
// a volunteer, and the audit trail keeps the historical link.
func (d *Delivery) Complete(volunteerID kernel.UUID, at time.Time) error {
	if err := d.requireAssignee(volunteerID); err != nil {
		return err
	}

	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.completedAt = &at
	d.volunteerID = nil
	return nil
}

// Cancel cancels an active delivery on behalf of the given actor. When the
// delivery had already been claimed or picked up, it automatically re-enters
// the open pool with the policy's cancel boost so another volunteer sees it
// first; only a cancel from open is terminal.
func (d *Delivery) Cancel(actor Actor, reason string, policy RequeuePolicy, at time.Time) error {
	return d.cancel(actor, reason, policy, at, true)
}

// CancelWithoutRequeue cancels an active delivery terminally regardless of
// prior status. Used when the request itself is going away, e.g. the
// recipient's account is being deleted.
func (d *Delivery) CancelWithoutRequeue(actor Actor, reason string, at time.Time) error {
	return d.cancel(actor, reason, RequeuePolicy{}, at, false)
}

func (d *Delivery) cancel(actor Actor, reason string, policy RequeuePolicy, at time.Time, requeue bool) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	wasClaimed := d.status == StatusClaimed || d.status == StatusPickedUp

	d.status = newStatus
	d.canceledAt = &at
	d.canceledBy = actor
	d.cancellationReason = reason
	d.volunteerID = nil
	d.claimedAt = nil
	d.pickedUpAt = nil

	if requeue && wasClaimed {
		d.reopenWithBoost(policy.CancelBoost)
	}

	return nil
}

// Release returns a claimed delivery to the pool at the volunteer's request,
// boosting priority by the policy's release boost. Disallowed once picked up:
// groceries in transit can only be resolved by an administrator cancel.
// The release reason is recorded in the audit trail, not on the record.
func (d *Delivery) Release(volunteerID kernel.UUID, policy RequeuePolicy, at time.Time) error {
	if err := d.requireAssignee(volunteerID); err != nil {
		return err
	}

	newStatus, err := d.status.Release()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.volunteerID = nil
	d.claimedAt = nil
	d.pickedUpAt = nil
	d.priority += policy.ReleaseBoost
	return nil
}

// reopenWithBoost puts a just-canceled delivery back into the pool, clearing
// the cancellation bookkeeping and raising priority.
func (d *Delivery) reopenWithBoost(boost int) {
	d.status = StatusOpen
	d.priority += boost
	d.canceledAt = nil
	d.canceledBy = ActorUnknown
	d.cancellationReason = ""
}

func (d *Delivery) requireAssignee(volunteerID kernel.UUID) error {
	if err := volunteerID.Validate(); err != nil {
		return err
	}
	if d.volunteerID == nil || !d.volunteerID.IsEqual(volunteerID) {
		return ErrNotAssigned
	}
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipientID", err)
	}
	d.recipientID = id
	return nil
}

func (d *Delivery) setVolunteerID(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("volunteerID", err)
		}
	}
	if err := d.status.ValidateCanHaveVolunteer(id != nil); err != nil {
		return err
	}
	d.volunteerID = id
	return nil
}

func (d *Delivery) setStoreName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("storeName")
	}
	d.storeName = name
	return nil
}

func (d *Delivery) setPickupAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	d.pickupAddress = address
	return nil
}

func (d *Delivery) setStoreLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("storeLocation", err)
		}
	}
	d.storeLocation = location
	return nil
}

func (d *Delivery) setOrderName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("orderName")
	}
	d.orderName = name
	return nil
}

func (d *Delivery) setPickupTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("pickupTime")
	}
	d.pickupTime = t
	return nil
}

func (d *Delivery) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.status = s
	return nil
}
