package message

import (
	"communitydelivery/internal/pkg/errs"
)

// Sender identifies which side of a delivery wrote a message. The value is
// stored as its snake_case string alongside the author's identifier.
type Sender int

const (
	// SenderUnknown is the invalid zero value.
	SenderUnknown Sender = iota
	// SenderRecipient is the requester who created the delivery.
	SenderRecipient
	// SenderVolunteer is the fulfiller assigned to the delivery.
	SenderVolunteer
)

func getSenderStrings() map[Sender]string {
	return map[Sender]string{
		SenderUnknown:   "unknown",
		SenderRecipient: "recipient",
		SenderVolunteer: "volunteer",
	}
}

// SenderFromString resolves the stored string form back to a Sender.
func SenderFromString(s string) (Sender, error) {
	for sender, str := range getSenderStrings() {
		if sender != SenderUnknown && str == s {
			return sender, nil
		}
	}
	return SenderUnknown, errs.NewValueIsInvalidError("sender")
}

// Validate reports whether the sender holds one of the two valid sides.
func (s Sender) Validate() error {
	if s < SenderRecipient || s > SenderVolunteer {
		return errs.NewValueIsInvalidError("sender")
	}
	return nil
}

// String returns the snake_case side name. Implements fmt.Stringer.
func (s Sender) String() string {
	if str, ok := getSenderStrings()[s]; ok {
		return str
	}
	return "unknown"
}
