// Package rating contains the Rating value recorded by a recipient after a
// completed delivery. One rating per delivery; the average per volunteer is
// recomputed when a rating lands.
package rating

import (
	"errors"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

const (
	// MinScore is the lowest allowed rating score.
	MinScore = 1
	// MaxScore is the highest allowed rating score.
	MaxScore = 5
)

// ErrRatingIsNotConstructed is returned when a Rating was not created via
// NewRating or RestoreRating.
var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating or RestoreRating constructor")

// Rating records a recipient's score for the volunteer on one completed
// delivery. Ratings are immutable once written.
type Rating struct {
	id          kernel.UUID
	deliveryID  kernel.UUID
	volunteerID kernel.UUID
	recipientID kernel.UUID

	score   int
	comment string

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewRating creates a rating. score must lie in [MinScore, MaxScore].
func NewRating(
	id kernel.UUID,
	deliveryID kernel.UUID,
	volunteerID kernel.UUID,
	recipientID kernel.UUID,
	score int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	r := &Rating{
		comment:   comment,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDeliveryID(deliveryID),
		r.setVolunteerID(volunteerID),
		r.setRecipientID(recipientID),
		r.setScore(score),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRating reconstructs a rating from persistence.
func RestoreRating(
	id kernel.UUID,
	deliveryID kernel.UUID,
	volunteerID kernel.UUID,
	recipientID kernel.UUID,
	score int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	return NewRating(id, deliveryID, volunteerID, recipientID, score, comment, createdAt)
}

// Validate ensures the rating was built through a constructor.
func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// IsEqual compares ratings by identity.
func (r *Rating) IsEqual(other *Rating) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rating's unique identifier.
func (r *Rating) ID() kernel.UUID { return r.id }

// DeliveryID returns the rated delivery.
func (r *Rating) DeliveryID() kernel.UUID { return r.deliveryID }

// VolunteerID returns the rated volunteer.
func (r *Rating) VolunteerID() kernel.UUID { return r.volunteerID }

// RecipientID returns the rating author.
func (r *Rating) RecipientID() kernel.UUID { return r.recipientID }

// Score returns the 1 to 5 score.
func (r *Rating) Score() int { return r.score }

// Comment returns the optional free-text comment.
func (r *Rating) Comment() string { return r.comment }

// CreatedAt returns when the rating was submitted.
func (r *Rating) CreatedAt() time.Time { return r.createdAt }

func (r *Rating) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rating) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.deliveryID = id
	return nil
}

func (r *Rating) setVolunteerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.volunteerID = id
	return nil
}

func (r *Rating) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.recipientID = id
	return nil
}

func (r *Rating) setScore(score int) error {
	if score < MinScore || score > MaxScore {
		return errs.NewValueIsOutOfRangeError("score", score, MinScore, MaxScore)
	}
	r.score = score
	return nil
}
