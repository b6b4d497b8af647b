package delivery

import (
	"communitydelivery/internal/pkg/errs"
)

// Actor identifies who initiated a cancellation. The value is recorded on the
// delivery and in the audit trail; an external batch collaborator canceling
// stale work uses ActorSystem and is treated exactly like a human caller.
type Actor int

const (
	// ActorUnknown is the invalid zero value.
	ActorUnknown Actor = iota
	// ActorRecipient is the requester who created the delivery.
	ActorRecipient
	// ActorVolunteer is the fulfiller assigned to the delivery.
	ActorVolunteer
	// ActorAdmin is an auditor acting on behalf of the organization.
	ActorAdmin
	// ActorSystem is an automated process (retention cleanup, account deletion).
	ActorSystem
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown:   "unknown",
		ActorRecipient: "recipient",
		ActorVolunteer: "volunteer",
		ActorAdmin:     "admin",
		ActorSystem:    "system",
	}
}

// ActorFromString resolves the stored string form back to an Actor. The
// "unknown" form is accepted: deliveries that were never canceled persist it.
func ActorFromString(s string) (Actor, error) {
	for actor, str := range getActorStrings() {
		if str == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidError("actor")
}

// Validate reports whether the actor holds one of the four valid roles.
func (a Actor) Validate() error {
	if a < ActorRecipient || a > ActorSystem {
		return errs.NewValueIsInvalidError("actor")
	}
	return nil
}

// String returns the snake_case role name. Implements fmt.Stringer.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}
