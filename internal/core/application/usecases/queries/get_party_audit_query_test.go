package queries_test

import (
	"testing"

	"communitydelivery/internal/core/application/usecases/queries"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPartyAuditQuery(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("defaults the limit", func(t *testing.T) {
		query, err := queries.NewGetPartyAuditQuery(queries.PartyVolunteer, id, 0)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultAuditLimit, query.Limit())
	})

	t.Run("keeps an explicit limit", func(t *testing.T) {
		query, err := queries.NewGetPartyAuditQuery(queries.PartyRecipient, id, 25)

		require.NoError(t, err)
		assert.Equal(t, 25, query.Limit())
		assert.Equal(t, queries.PartyRecipient, query.Party())
	})

	t.Run("rejects an unknown party", func(t *testing.T) {
		_, err := queries.NewGetPartyAuditQuery(queries.AuditParty(0), id, 10)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a zero party id", func(t *testing.T) {
		_, err := queries.NewGetPartyAuditQuery(queries.PartyVolunteer, kernel.UUID{}, 10)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		err := queries.GetPartyAuditQuery{}.Validate()

		require.ErrorIs(t, err, queries.ErrGetPartyAuditQueryIsNotConstructed)
	})
}
