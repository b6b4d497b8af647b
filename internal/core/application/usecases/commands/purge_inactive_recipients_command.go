package commands

import (
	"errors"
	"time"

	"communitydelivery/internal/pkg/guard"
)

var (
	ErrPurgeInactiveRecipientsCommandIsNotConstructed = errors.New(
		"PurgeInactiveRecipientsCommand must be created via NewPurgeInactiveRecipientsCommand constructor",
	)
	ErrRetentionIsInvalid = errors.New("retention must be greater than 0")
)

// DefaultRetention is how long a recipient's contact data is kept after
// their last delivery activity.
const DefaultRetention = 18 * 30 * 24 * time.Hour // 18 months

// PurgeInactiveRecipientsCommand represents a retention sweep: recipients
// with no delivery activity inside the retention window lose their stored
// contact data.
type PurgeInactiveRecipientsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPurgeInactiveRecipientsCommand creates a purge command with the given
// retention window.
func NewPurgeInactiveRecipientsCommand(retention time.Duration) (PurgeInactiveRecipientsCommand, error) {
	cmd := PurgeInactiveRecipientsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRetention(retention); err != nil {
		return PurgeInactiveRecipientsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeInactiveRecipientsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeInactiveRecipientsCommandIsNotConstructed)
}

// Retention returns the retention window.
func (c PurgeInactiveRecipientsCommand) Retention() time.Duration { return c.retention }

func (c *PurgeInactiveRecipientsCommand) setRetention(retention time.Duration) error {
	if retention <= 0 {
		return ErrRetentionIsInvalid
	}
	c.retention = retention
	return nil
}
