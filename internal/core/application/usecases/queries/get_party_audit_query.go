package queries

import (
	"errors"
	"fmt"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

var ErrGetPartyAuditQueryIsNotConstructed = errors.New(
	"GetPartyAuditQuery must be created via NewGetPartyAuditQuery constructor",
)

// DefaultAuditLimit bounds party audit reads when the caller does not ask for
// a specific page size.
const DefaultAuditLimit = 100

// AuditParty selects which participant column a party audit query matches.
type AuditParty int

const (
	partyUnknown AuditParty = iota

	// PartyVolunteer matches entries referencing a volunteer.
	PartyVolunteer
	// PartyRecipient matches entries referencing a recipient.
	PartyRecipient
)

// GetPartyAuditQuery retrieves the recent audit history involving one
// volunteer or recipient, newest entry first, bounded by a limit.
type GetPartyAuditQuery struct {
	party   AuditParty
	partyID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewGetPartyAuditQuery creates a bounded history query for one party. A
// non-positive limit falls back to DefaultAuditLimit.
func NewGetPartyAuditQuery(party AuditParty, partyID kernel.UUID, limit int) (GetPartyAuditQuery, error) {
	if party != PartyVolunteer && party != PartyRecipient {
		return GetPartyAuditQuery{}, errs.NewValueIsInvalidErrorWithCause("party",
			fmt.Errorf("%d is not a valid audit party", party))
	}
	if err := partyID.Validate(); err != nil {
		return GetPartyAuditQuery{}, err
	}
	if limit <= 0 {
		limit = DefaultAuditLimit
	}

	return GetPartyAuditQuery{
		party:   party,
		partyID: partyID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPartyAuditQuery) Validate() error {
	return q.guard.Validate(ErrGetPartyAuditQueryIsNotConstructed)
}

// Party returns which participant column is matched.
func (q GetPartyAuditQuery) Party() AuditParty { return q.party }

// PartyID returns the matched participant.
func (q GetPartyAuditQuery) PartyID() kernel.UUID { return q.partyID }

// Limit returns the maximum number of entries to read.
func (q GetPartyAuditQuery) Limit() int { return q.limit }
