package audit

import (
	"fmt"

	"communitydelivery/internal/pkg/errs"
)

// Action identifies what an audit entry records. Values are stored as their
// snake_case strings, so renaming a constant is a data migration.
type Action int

const (
	// ActionUnknown is the invalid zero value.
	ActionUnknown Action = iota

	// ActionDeliveryCreated records a recipient posting a delivery request.
	ActionDeliveryCreated
	// ActionDeliveryClaimed records a volunteer winning a claim.
	ActionDeliveryClaimed
	// ActionDeliveryPickedUp records the groceries leaving the store.
	ActionDeliveryPickedUp
	// ActionDeliveryCompleted records a confirmed handoff.
	ActionDeliveryCompleted
	// ActionDeliveryCanceled records a cancellation, by whom and why.
	ActionDeliveryCanceled
	// ActionDeliveryReleased records a volunteer giving a claim back.
	ActionDeliveryReleased

	// ActionVolunteerRegistered records a new volunteer application.
	ActionVolunteerRegistered
	// ActionVolunteerApproved records an admin approving an application.
	ActionVolunteerApproved
	// ActionVolunteerRejected records an admin declining an application.
	ActionVolunteerRejected
	// ActionVolunteerSuspended records an admin suspending a volunteer.
	ActionVolunteerSuspended

	// ActionRecipientRegistered records a new recipient account.
	ActionRecipientRegistered
	// ActionRecipientDeleted records a recipient account deletion.
	ActionRecipientDeleted
	// ActionRecipientDataPurged records the retention purge of contact data.
	ActionRecipientDataPurged

	// ActionAddressAccessed records a volunteer viewing a recipient's
	// decrypted address after claiming.
	ActionAddressAccessed
	// ActionRatingSubmitted records a recipient rating a completed delivery.
	ActionRatingSubmitted
	// ActionMessageSent records an in-app message between the parties of a
	// delivery.
	ActionMessageSent
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:             "unknown",
		ActionDeliveryCreated:     "delivery_created",
		ActionDeliveryClaimed:     "delivery_claimed",
		ActionDeliveryPickedUp:    "delivery_picked_up",
		ActionDeliveryCompleted:   "delivery_completed",
		ActionDeliveryCanceled:    "delivery_canceled",
		ActionDeliveryReleased:    "delivery_released",
		ActionVolunteerRegistered: "volunteer_registered",
		ActionVolunteerApproved:   "volunteer_approved",
		ActionVolunteerRejected:   "volunteer_rejected",
		ActionVolunteerSuspended:  "volunteer_suspended",
		ActionRecipientRegistered: "recipient_registered",
		ActionRecipientDeleted:    "recipient_deleted",
		ActionRecipientDataPurged: "recipient_data_purged",
		ActionAddressAccessed:     "address_accessed",
		ActionRatingSubmitted:     "rating_submitted",
		ActionMessageSent:         "message_sent",
	}
}

// ActionFromString resolves the stored string form back to an Action.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if action != ActionUnknown && str == s {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a known audit action", s))
}

// Validate reports whether the action holds one of the known values.
func (a Action) Validate() error {
	if a < ActionDeliveryCreated || a > ActionMessageSent {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid audit action", a))
	}
	return nil
}

// String returns the snake_case name of the action. Implements fmt.Stringer.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}
