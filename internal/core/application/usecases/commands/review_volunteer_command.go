package commands

import (
	"errors"
	"fmt"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/guard"
)

var (
	ErrReviewVolunteerCommandIsNotConstructed = errors.New(
		"ReviewVolunteerCommand must be created via NewReviewVolunteerCommand constructor",
	)
	ErrReviewDecisionIsInvalid = errors.New("review decision is invalid")
	ErrReviewReasonIsRequired  = errors.New("a reason is required for rejection and suspension")
)

// ReviewDecision is the admin's verdict on a volunteer.
type ReviewDecision int

const (
	// DecisionUnknown is the invalid zero value.
	DecisionUnknown ReviewDecision = iota
	// DecisionApprove admits the volunteer, or reinstates a suspended one.
	DecisionApprove
	// DecisionReject declines a pending application.
	DecisionReject
	// DecisionSuspend bars an approved volunteer from claiming.
	DecisionSuspend
)

// String returns the snake_case name of the decision.
func (d ReviewDecision) String() string {
	switch d {
	case DecisionApprove:
		return "approve"
	case DecisionReject:
		return "reject"
	case DecisionSuspend:
		return "suspend"
	default:
		return "unknown"
	}
}

// ReviewVolunteerCommand represents an admin ruling on a volunteer's vetting
// state.
type ReviewVolunteerCommand struct { //nolint:recvcheck //using for validation
	volunteerID kernel.UUID
	adminID     kernel.UUID
	decision    ReviewDecision
	reason      string
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewReviewVolunteerCommand creates a review command. A reason is mandatory
// for rejection and suspension, optional for approval.
func NewReviewVolunteerCommand(
	volunteerID kernel.UUID,
	adminID kernel.UUID,
	decision ReviewDecision,
	reason string,
	ipAddress string,
) (ReviewVolunteerCommand, error) {
	cmd := ReviewVolunteerCommand{
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolunteerID(volunteerID),
		cmd.setAdminID(adminID),
		cmd.setDecision(decision, reason),
	); err != nil {
		return ReviewVolunteerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewVolunteerCommand) Validate() error {
	return c.guard.Validate(ErrReviewVolunteerCommandIsNotConstructed)
}

// VolunteerID returns the volunteer under review.
func (c ReviewVolunteerCommand) VolunteerID() kernel.UUID { return c.volunteerID }

// AdminID returns the reviewing admin.
func (c ReviewVolunteerCommand) AdminID() kernel.UUID { return c.adminID }

// Decision returns the admin's verdict.
func (c ReviewVolunteerCommand) Decision() ReviewDecision { return c.decision }

// Reason returns the verdict's reason, possibly empty for approvals.
func (c ReviewVolunteerCommand) Reason() string { return c.reason }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c ReviewVolunteerCommand) IPAddress() string { return c.ipAddress }

func (c *ReviewVolunteerCommand) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volunteerID = id
	return nil
}

func (c *ReviewVolunteerCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}

func (c *ReviewVolunteerCommand) setDecision(decision ReviewDecision, reason string) error {
	switch decision {
	case DecisionApprove:
	case DecisionReject, DecisionSuspend:
		if reason == "" {
			return ErrReviewReasonIsRequired
		}
	default:
		return fmt.Errorf("%w: %d", ErrReviewDecisionIsInvalid, decision)
	}

	c.decision = decision
	c.reason = reason
	return nil
}
