package volunteer

import (
	"fmt"

	"communitydelivery/internal/pkg/errs"
)

// Status represents the vetting state of a volunteer.
//
//	pending ──> approved ──> suspended
//	   │            ^            │
//	   │            └────────────┘
//	   └──────> rejected
//
// Only approved volunteers may claim deliveries. Suspension is reversible
// (re-approval), rejection is not revisited by the core.
type Status int

const (
	// StatusUnknown is the invalid zero value.
	StatusUnknown Status = iota
	// StatusPending marks an application awaiting admin review.
	StatusPending
	// StatusApproved marks a vetted, active volunteer.
	StatusApproved
	// StatusSuspended marks a volunteer temporarily barred from claiming.
	StatusSuspended
	// StatusRejected marks a declined application.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusApproved:  "approved",
		StatusSuspended: "suspended",
		StatusRejected:  "rejected",
	}
}

// StatusFromString resolves the stored string form back to a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known volunteer status", s))
}

// Validate reports whether the status holds one of the four vetting values.
func (s Status) Validate() error {
	if s < StatusPending || s > StatusRejected {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid volunteer status", s))
	}
	return nil
}

// String returns the snake_case name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsApproved reports whether the volunteer may participate in matching.
func (s Status) IsApproved() bool {
	return s == StatusApproved
}
