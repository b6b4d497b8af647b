package delivery_test

import (
	"testing"
	"time"

	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	store, err := kernel.NewGeoPoint(38.60, -121.41)
	require.NoError(t, err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Corner Grocery",
		"123 J Street, Sacramento, CA",
		&store,
		"Order for Dana",
		time.Now().Add(2*time.Hour),
		"about 10 items",
		time.Now(),
	)
	require.NoError(t, err)
	return d
}

// assertAssignmentInvariant checks that a volunteer is attached iff the
// delivery is claimed or picked up.
func assertAssignmentInvariant(t *testing.T, d *delivery.Delivery) {
	t.Helper()
	assigned := d.VolunteerID() != nil
	holds := d.Status() == delivery.StatusClaimed || d.Status() == delivery.StatusPickedUp
	assert.Equal(t, holds, assigned,
		"assignment invariant violated: status=%s assigned=%v", d.Status(), assigned)
	require.NoError(t, d.Validate())
}

func TestNewDelivery(t *testing.T) {
	t.Run("creates_open_delivery_at_priority_zero", func(t *testing.T) {
		d := newTestDelivery(t)

		assert.Equal(t, delivery.StatusOpen, d.Status())
		assert.Equal(t, 0, d.Priority())
		assert.Nil(t, d.VolunteerID())
		assert.Nil(t, d.ClaimedAt())
		assertAssignmentInvariant(t, d)
	})

	t.Run("allows_missing_store_location", func(t *testing.T) {
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(),
			"Corner Grocery", "123 J Street", nil,
			"Order for Dana", time.Now().Add(time.Hour), "", time.Now(),
		)
		require.NoError(t, err)
		assert.Nil(t, d.StoreLocation())
	})

	t.Run("rejects_missing_required_fields", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(),
			"", "", nil, "", time.Time{}, "", time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("rejects_invalid_recipient", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.UUID{},
			"Corner Grocery", "123 J Street", nil,
			"Order for Dana", time.Now().Add(time.Hour), "", time.Now(),
		)
		require.Error(t, err)
	})
}

func TestDelivery_Validate(t *testing.T) {
	var d *delivery.Delivery
	require.Error(t, d.Validate())

	zero := &delivery.Delivery{}
	require.Error(t, zero.Validate())
}

func TestDelivery_Claim(t *testing.T) {
	t.Run("open_delivery_is_claimed", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		now := time.Now()

		require.NoError(t, d.Claim(volunteerID, now))

		assert.Equal(t, delivery.StatusClaimed, d.Status())
		require.NotNil(t, d.VolunteerID())
		assert.True(t, d.VolunteerID().IsEqual(volunteerID))
		require.NotNil(t, d.ClaimedAt())
		assert.Equal(t, now, *d.ClaimedAt())
		assertAssignmentInvariant(t, d)
	})

	t.Run("claimed_delivery_cannot_be_claimed_again", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.Claim(kernel.NewUUID(), time.Now()))

		err := d.Claim(kernel.NewUUID(), time.Now())
		assert.ErrorIs(t, err, delivery.ErrInvalidTransition)
		assertAssignmentInvariant(t, d)
	})
}

func TestDelivery_MarkPickedUp(t *testing.T) {
	t.Run("assignee_marks_pickup", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		require.NoError(t, d.Claim(volunteerID, time.Now()))

		require.NoError(t, d.MarkPickedUp(volunteerID, time.Now()))

		assert.Equal(t, delivery.StatusPickedUp, d.Status())
		assert.NotNil(t, d.PickedUpAt())
		assertAssignmentInvariant(t, d)
	})

	t.Run("non_assignee_is_rejected", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.Claim(kernel.NewUUID(), time.Now()))

		err := d.MarkPickedUp(kernel.NewUUID(), time.Now())
		assert.ErrorIs(t, err, delivery.ErrNotAssigned)
		assert.Equal(t, delivery.StatusClaimed, d.Status())
	})

	t.Run("open_delivery_cannot_be_picked_up", func(t *testing.T) {
		d := newTestDelivery(t)
		err := d.MarkPickedUp(kernel.NewUUID(), time.Now())
		// No assignee yet, so the caller is rejected before the transition.
		assert.ErrorIs(t, err, delivery.ErrNotAssigned)
		assert.Equal(t, delivery.StatusOpen, d.Status())
	})
}

func TestDelivery_Complete(t *testing.T) {
	t.Run("completes_from_picked_up_and_clears_assignment", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		require.NoError(t, d.Claim(volunteerID, time.Now()))
		require.NoError(t, d.MarkPickedUp(volunteerID, time.Now()))

		require.NoError(t, d.Complete(volunteerID, time.Now()))

		assert.Equal(t, delivery.StatusCompleted, d.Status())
		assert.Nil(t, d.VolunteerID())
		assert.NotNil(t, d.CompletedAt())
		assertAssignmentInvariant(t, d)
	})

	t.Run("completes_directly_from_claimed", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		require.NoError(t, d.Claim(volunteerID, time.Now()))

		require.NoError(t, d.Complete(volunteerID, time.Now()))
		assert.Equal(t, delivery.StatusCompleted, d.Status())
	})

	t.Run("non_assignee_cannot_complete", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.Claim(kernel.NewUUID(), time.Now()))

		err := d.Complete(kernel.NewUUID(), time.Now())
		assert.ErrorIs(t, err, delivery.ErrNotAssigned)
	})
}

func TestDelivery_Cancel(t *testing.T) {
	policy := delivery.DefaultRequeuePolicy()

	t.Run("cancel_from_open_is_terminal", func(t *testing.T) {
		d := newTestDelivery(t)

		require.NoError(t, d.Cancel(delivery.ActorRecipient, "no longer needed", policy, time.Now()))

		assert.Equal(t, delivery.StatusCanceled, d.Status())
		assert.Equal(t, delivery.ActorRecipient, d.CanceledBy())
		assert.Equal(t, "no longer needed", d.CancellationReason())
		assert.NotNil(t, d.CanceledAt())
		assert.Equal(t, 0, d.Priority())
		assertAssignmentInvariant(t, d)
	})

	t.Run("cancel_after_claim_requeues_with_boost", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.Claim(kernel.NewUUID(), time.Now()))

		require.NoError(t, d.Cancel(delivery.ActorRecipient, "schedule changed", policy, time.Now()))

		assert.Equal(t, delivery.StatusOpen, d.Status())
		assert.Equal(t, 10, d.Priority())
		assert.Nil(t, d.VolunteerID())
		assert.Nil(t, d.ClaimedAt())
		assert.Nil(t, d.CanceledAt())
		assert.Equal(t, delivery.ActorUnknown, d.CanceledBy())
		assert.Empty(t, d.CancellationReason())
		assertAssignmentInvariant(t, d)
	})

	t.Run("cancel_after_pickup_requeues", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		require.NoError(t, d.Claim(volunteerID, time.Now()))
		require.NoError(t, d.MarkPickedUp(volunteerID, time.Now()))

		require.NoError(t, d.Cancel(delivery.ActorRecipient, "", policy, time.Now()))

		assert.Equal(t, delivery.StatusOpen, d.Status())
		assert.Equal(t, 10, d.Priority())
		assert.Nil(t, d.VolunteerID())
		assert.Nil(t, d.PickedUpAt())
		assertAssignmentInvariant(t, d)
	})

	t.Run("terminal_delivery_cannot_be_canceled", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		require.NoError(t, d.Claim(volunteerID, time.Now()))
		require.NoError(t, d.Complete(volunteerID, time.Now()))

		err := d.Cancel(delivery.ActorAdmin, "", policy, time.Now())
		assert.ErrorIs(t, err, delivery.ErrInvalidTransition)
	})

	t.Run("invalid_actor_is_rejected", func(t *testing.T) {
		d := newTestDelivery(t)
		err := d.Cancel(delivery.ActorUnknown, "", policy, time.Now())
		require.Error(t, err)
		assert.Equal(t, delivery.StatusOpen, d.Status())
	})
}

func TestDelivery_CancelWithoutRequeue(t *testing.T) {
	d := newTestDelivery(t)
	require.NoError(t, d.Claim(kernel.NewUUID(), time.Now()))

	require.NoError(t, d.CancelWithoutRequeue(delivery.ActorSystem, "recipient account deleted", time.Now()))

	assert.Equal(t, delivery.StatusCanceled, d.Status())
	assert.Equal(t, delivery.ActorSystem, d.CanceledBy())
	assert.Nil(t, d.VolunteerID())
	assertAssignmentInvariant(t, d)
}

func TestDelivery_Release(t *testing.T) {
	policy := delivery.DefaultRequeuePolicy()

	t.Run("claimed_delivery_released_back_to_pool", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		require.NoError(t, d.Claim(volunteerID, time.Now()))

		require.NoError(t, d.Release(volunteerID, policy, time.Now()))

		assert.Equal(t, delivery.StatusOpen, d.Status())
		assert.Equal(t, 5, d.Priority())
		assert.Nil(t, d.VolunteerID())
		assert.Nil(t, d.ClaimedAt())
		assertAssignmentInvariant(t, d)
	})

	t.Run("release_after_pickup_is_rejected", func(t *testing.T) {
		d := newTestDelivery(t)
		volunteerID := kernel.NewUUID()
		require.NoError(t, d.Claim(volunteerID, time.Now()))
		require.NoError(t, d.MarkPickedUp(volunteerID, time.Now()))

		err := d.Release(volunteerID, policy, time.Now())
		assert.ErrorIs(t, err, delivery.ErrInvalidTransition)
		assert.Equal(t, delivery.StatusPickedUp, d.Status())
	})

	t.Run("non_assignee_cannot_release", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.Claim(kernel.NewUUID(), time.Now()))

		err := d.Release(kernel.NewUUID(), policy, time.Now())
		assert.ErrorIs(t, err, delivery.ErrNotAssigned)
	})
}

func TestDelivery_PriorityNeverDecreases(t *testing.T) {
	d := newTestDelivery(t)
	policy := delivery.DefaultRequeuePolicy()
	last := d.Priority()

	volunteerID := kernel.NewUUID()
	require.NoError(t, d.Claim(volunteerID, time.Now()))
	require.NoError(t, d.Release(volunteerID, policy, time.Now()))
	assert.GreaterOrEqual(t, d.Priority(), last)
	last = d.Priority()

	require.NoError(t, d.Claim(kernel.NewUUID(), time.Now()))
	require.NoError(t, d.Cancel(delivery.ActorRecipient, "", policy, time.Now()))
	assert.GreaterOrEqual(t, d.Priority(), last)
	assert.Equal(t, 15, d.Priority())
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("restores_claimed_delivery", func(t *testing.T) {
		id := kernel.NewUUID()
		recipientID := kernel.NewUUID()
		volunteerID := kernel.NewUUID()
		claimedAt := time.Now()

		d, err := delivery.RestoreDelivery(
			id, recipientID, &volunteerID,
			"Corner Grocery", "123 J Street", nil,
			"Order for Dana", time.Now().Add(time.Hour), "2 bags",
			delivery.StatusClaimed, 10, time.Now(),
			&claimedAt, nil, nil, nil,
			delivery.ActorUnknown, "",
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusClaimed, d.Status())
		assert.Equal(t, 10, d.Priority())
		assertAssignmentInvariant(t, d)
	})

	t.Run("rejects_assignment_on_open_delivery", func(t *testing.T) {
		volunteerID := kernel.NewUUID()

		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), &volunteerID,
			"Corner Grocery", "123 J Street", nil,
			"Order for Dana", time.Now().Add(time.Hour), "",
			delivery.StatusOpen, 0, time.Now(),
			nil, nil, nil, nil,
			delivery.ActorUnknown, "",
		)

		require.Error(t, err)
	})

	t.Run("rejects_claimed_delivery_without_assignment", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Corner Grocery", "123 J Street", nil,
			"Order for Dana", time.Now().Add(time.Hour), "",
			delivery.StatusClaimed, 0, time.Now(),
			nil, nil, nil, nil,
			delivery.ActorUnknown, "",
		)

		require.Error(t, err)
	})

	t.Run("rejects_negative_priority", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Corner Grocery", "123 J Street", nil,
			"Order for Dana", time.Now().Add(time.Hour), "",
			delivery.StatusOpen, -1, time.Now(),
			nil, nil, nil, nil,
			delivery.ActorUnknown, "",
		)

		require.Error(t, err)
	})
}

func TestNewRequeuePolicy(t *testing.T) {
	p, err := delivery.NewRequeuePolicy(20, 8)
	require.NoError(t, err)
	assert.Equal(t, 20, p.CancelBoost)
	assert.Equal(t, 8, p.ReleaseBoost)

	_, err = delivery.NewRequeuePolicy(-1, 5)
	require.Error(t, err)

	_, err = delivery.NewRequeuePolicy(10, -5)
	require.Error(t, err)

	def := delivery.DefaultRequeuePolicy()
	assert.Equal(t, 10, def.CancelBoost)
	assert.Equal(t, 5, def.ReleaseBoost)
}
