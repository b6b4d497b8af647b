package delivery

import (
	"fmt"

	"communitydelivery/internal/pkg/errs"
)

const (
	// defaultCancelBoost is added to priority when a claimed or picked-up
	// delivery is canceled and re-enters the pool.
	defaultCancelBoost = 10
	// defaultReleaseBoost is added to priority when a volunteer releases a claim.
	defaultReleaseBoost = 5
)

// RequeuePolicy holds the priority boosts applied when a delivery falls back
// into the open pool. The increments are deployment configuration, not domain
// law: the defaults reproduce the long-standing +10 cancel / +5 release
// behavior, but operators may tune them. Priority only ever increases.
type RequeuePolicy struct {
	CancelBoost  int
	ReleaseBoost int
}

// DefaultRequeuePolicy returns the standard boosts (+10 cancel, +5 release).
func DefaultRequeuePolicy() RequeuePolicy {
	return RequeuePolicy{
		CancelBoost:  defaultCancelBoost,
		ReleaseBoost: defaultReleaseBoost,
	}
}

// NewRequeuePolicy creates a policy with explicit boosts. Negative boosts are
// rejected because priority is monotonically non-decreasing.
func NewRequeuePolicy(cancelBoost, releaseBoost int) (RequeuePolicy, error) {
	if cancelBoost < 0 {
		return RequeuePolicy{}, errs.NewValueIsInvalidErrorWithCause("cancelBoost",
			fmt.Errorf("%d is negative", cancelBoost))
	}
	if releaseBoost < 0 {
		return RequeuePolicy{}, errs.NewValueIsInvalidErrorWithCause("releaseBoost",
			fmt.Errorf("%d is negative", releaseBoost))
	}
	return RequeuePolicy{CancelBoost: cancelBoost, ReleaseBoost: releaseBoost}, nil
}
