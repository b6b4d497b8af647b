package commands

import (
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/rating"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

// SubmitRatingCommand represents a recipient rating the volunteer who
// completed their delivery.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	recipientID kernel.UUID
	score       int
	comment     string
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewSubmitRatingCommand creates a rating command. score must lie in
// [rating.MinScore, rating.MaxScore]; comment is optional.
func NewSubmitRatingCommand(
	deliveryID kernel.UUID,
	recipientID kernel.UUID,
	score int,
	comment string,
	ipAddress string,
) (SubmitRatingCommand, error) {
	cmd := SubmitRatingCommand{
		comment:   comment,
		ipAddress: ipAddress,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setRecipientID(recipientID),
		cmd.setScore(score),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

// DeliveryID returns the rated delivery.
func (c SubmitRatingCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// RecipientID returns the rating author.
func (c SubmitRatingCommand) RecipientID() kernel.UUID { return c.recipientID }

// Score returns the 1 to 5 score.
func (c SubmitRatingCommand) Score() int { return c.score }

// Comment returns the optional free-text comment.
func (c SubmitRatingCommand) Comment() string { return c.comment }

// IPAddress returns the request origin for the audit trail, possibly empty.
func (c SubmitRatingCommand) IPAddress() string { return c.ipAddress }

func (c *SubmitRatingCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *SubmitRatingCommand) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recipientID = id
	return nil
}

func (c *SubmitRatingCommand) setScore(score int) error {
	if score < rating.MinScore || score > rating.MaxScore {
		return errs.NewValueIsOutOfRangeError("score", score, rating.MinScore, rating.MaxScore)
	}
	c.score = score
	return nil
}
