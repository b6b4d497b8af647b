package commands_test

import (
	"testing"
	"time"

	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/recipient"
	"communitydelivery/internal/core/domain/model/volunteer"

	"github.com/stretchr/testify/require"
)

func testGeoPoint(t *testing.T, lat, lon float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return &p
}

func newOpenDelivery(t *testing.T, id, recipientID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		id,
		recipientID,
		"Corner Grocery",
		"1200 K St, Sacramento",
		testGeoPoint(t, 38.58, -121.49),
		"order for Pat",
		time.Now().Add(2*time.Hour),
		"3 bags",
		time.Now(),
	)
	require.NoError(t, err)
	return d
}

func newClaimedDelivery(t *testing.T, id, recipientID, volunteerID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d := newOpenDelivery(t, id, recipientID)
	require.NoError(t, d.Claim(volunteerID, time.Now()))
	return d
}

func newCompletedDelivery(t *testing.T, id, recipientID, volunteerID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d := newClaimedDelivery(t, id, recipientID, volunteerID)
	require.NoError(t, d.Complete(volunteerID, time.Now()))
	return d
}

func newApprovedVolunteer(t *testing.T, id kernel.UUID) *volunteer.Volunteer {
	t.Helper()
	v, err := volunteer.NewVolunteer(id, "Jordan Baker", "Midtown Sacramento",
		testGeoPoint(t, 38.57, -121.48), 25, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, v.Approve(kernel.NewUUID(), time.Now()))
	return v
}

func newPendingVolunteer(t *testing.T, id kernel.UUID) *volunteer.Volunteer {
	t.Helper()
	v, err := volunteer.NewVolunteer(id, "Jordan Baker", "Midtown Sacramento",
		nil, 0, "", time.Now())
	require.NoError(t, err)
	return v
}

func newActiveRecipient(t *testing.T, id kernel.UUID) *recipient.Recipient {
	t.Helper()
	r, err := recipient.NewRecipient(id, "Pat R.", "South Natomas",
		[]byte("addr-ct"), []byte("phone-ct"), nil,
		testGeoPoint(t, 38.58, -121.49), time.Now())
	require.NoError(t, err)
	return r
}
