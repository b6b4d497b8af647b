package services

import (
	"errors"
	"fmt"

	"communitydelivery/internal/pkg/errs"
)

// DefaultClaimCeiling is the number of simultaneously claimed or picked-up
// deliveries a volunteer may hold unless configured otherwise.
const DefaultClaimCeiling = 2

// ErrCapacityExceeded is returned when a volunteer already holds the maximum
// number of active claims.
var ErrCapacityExceeded = errors.New("volunteer active claim capacity exceeded")

// CapacityExceededError reports a rejected claim with the ceiling and the
// observed active count.
type CapacityExceededError struct {
	Ceiling     int
	ActiveCount int
}

// Error implements the error interface.
func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %d active of %d allowed",
		ErrCapacityExceeded, e.ActiveCount, e.Ceiling)
}

// Unwrap supports errors.Is checks against ErrCapacityExceeded.
func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// NewCapacityExceededError creates a CapacityExceededError.
func NewCapacityExceededError(ceiling, activeCount int) *CapacityExceededError {
	return &CapacityExceededError{Ceiling: ceiling, ActiveCount: activeCount}
}

// CapacityGuard enforces the per-volunteer ceiling on concurrently active
// claims. The active count is always derived from delivery rows at decision
// time; the guard never caches it.
type CapacityGuard struct {
	ceiling int
}

// NewCapacityGuard creates a guard with the given ceiling. The ceiling must
// be positive.
func NewCapacityGuard(ceiling int) (CapacityGuard, error) {
	if ceiling <= 0 {
		return CapacityGuard{}, errs.NewValueIsInvalidErrorWithCause("ceiling",
			fmt.Errorf("%d is not greater than 0", ceiling))
	}
	return CapacityGuard{ceiling: ceiling}, nil
}

// DefaultCapacityGuard creates a guard with DefaultClaimCeiling.
func DefaultCapacityGuard() CapacityGuard {
	return CapacityGuard{ceiling: DefaultClaimCeiling}
}

// Ceiling returns the configured maximum of concurrent active claims.
func (g CapacityGuard) Ceiling() int {
	return g.ceiling
}

// CheckCanAccept returns a CapacityExceededError when a volunteer with
// activeCount current claims may not take one more.
func (g CapacityGuard) CheckCanAccept(activeCount int) error {
	if activeCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("activeCount",
			fmt.Errorf("%d is negative", activeCount))
	}
	if activeCount >= g.ceiling {
		return NewCapacityExceededError(g.ceiling, activeCount)
	}
	return nil
}
