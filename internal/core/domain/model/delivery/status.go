package delivery

import (
	"errors"
	"fmt"

	"communitydelivery/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for every rejected status transition.
// Callers classify with errors.Is; the concrete InvalidTransitionError carries
// the offending state and event.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a transition attempted from a status that
// does not permit it. The record is left untouched when this is returned.
type InvalidTransitionError struct {
	From  Status
	Event string
}

func newInvalidTransitionError(from Status, event string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a delivery in status %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a delivery request.
// It implements the state machine governing the delivery workflow:
//
//	open ──> claimed ──> picked_up ──> completed
//	  │         │            │
//	  │         ├────────────┴──> canceled
//	  │         │
//	  │         └──(release)──> open
//	  └──────────────────────> canceled
//
// A cancel from claimed or picked_up automatically re-enters open with a
// priority boost (handled by the Delivery aggregate); only a cancel from open
// is terminal. Release is allowed solely from claimed: once groceries are
// picked up, the handoff can only be resolved by an administrator cancel.
type Status int

const (
	// StatusUnknown is the invalid zero value, kept to catch uninitialized statuses.
	StatusUnknown Status = iota

	// StatusOpen marks a delivery waiting in the pool for a volunteer to claim.
	StatusOpen

	// StatusClaimed marks a delivery exclusively assigned to a volunteer.
	StatusClaimed

	// StatusPickedUp marks groceries collected from the store and in transit.
	StatusPickedUp

	// StatusCompleted is the terminal success state.
	StatusCompleted

	// StatusCanceled is the terminal abandoned state.
	StatusCanceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusOpen:      "open",
		StatusClaimed:   "claimed",
		StatusPickedUp:  "picked_up",
		StatusCompleted: "completed",
		StatusCanceled:  "canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as invalid
	return map[Status]string{
		StatusOpen:      "open",
		StatusClaimed:   "claimed",
		StatusPickedUp:  "picked_up",
		StatusCompleted: "completed",
		StatusCanceled:  "canceled",
	}
}

// StatusFromString resolves the stored string form back to a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known delivery status", s))
}

// Validate reports whether the status holds one of the five valid lifecycle
// values. Used when reconstructing deliveries from persistence.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return newInvalidTransitionError(s, "validate")
	}
	return nil
}

// String returns the snake_case name of the status, matching its wire and
// audit representation. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// IsActive reports whether the delivery is still in progress (open, claimed,
// or picked_up).
func (s Status) IsActive() bool {
	return s == StatusOpen || s == StatusClaimed || s == StatusPickedUp
}

// ValidateCanHaveVolunteer enforces the assignment invariant: a volunteer is
// attached iff the status is claimed or picked_up. Terminal and open
// deliveries always carry a nil assignment.
func (s Status) ValidateCanHaveVolunteer(assigned bool) error {
	holdsAssignment := s == StatusClaimed || s == StatusPickedUp
	if assigned && !holdsAssignment {
		return newInvalidTransitionError(s, "hold a volunteer assignment in")
	}
	if !assigned && holdsAssignment {
		return newInvalidTransitionError(s, "drop the volunteer assignment in")
	}
	return nil
}

// Claim transitions open -> claimed. Any other starting status is rejected,
// including the lost-race case where a concurrent claimant won first.
func (s Status) Claim() (Status, error) {
	if s != StatusOpen {
		return 0, newInvalidTransitionError(s, "claim")
	}
	return StatusClaimed, nil
}

// MarkPickedUp transitions claimed -> picked_up.
func (s Status) MarkPickedUp() (Status, error) {
	if s != StatusClaimed {
		return 0, newInvalidTransitionError(s, "mark picked up")
	}
	return StatusPickedUp, nil
}

// Complete transitions claimed or picked_up -> completed.
func (s Status) Complete() (Status, error) {
	if s != StatusClaimed && s != StatusPickedUp {
		return 0, newInvalidTransitionError(s, "complete")
	}
	return StatusCompleted, nil
}

// Cancel transitions open, claimed, or picked_up -> canceled. The aggregate
// decides whether the cancellation re-enters the pool.
func (s Status) Cancel() (Status, error) {
	if !s.IsActive() {
		return 0, newInvalidTransitionError(s, "cancel")
	}
	return StatusCanceled, nil
}

// Release transitions claimed -> open. A picked_up delivery cannot be
// released; the groceries are already in transit and only an administrator
// cancel can resolve it.
func (s Status) Release() (Status, error) {
	if s != StatusClaimed {
		return 0, newInvalidTransitionError(s, "release")
	}
	return StatusOpen, nil
}
