package deliveryrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"communitydelivery/internal/adapters/out/postgres/deliveryrepo"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite exercises the delivery repository
// against a real PostgreSQL instance, including the conditional claim write
// that arbitrates concurrent claims.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()

	original := suite.createOpenDelivery()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()

	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.RecipientID(), retrieved.RecipientID())
	suite.Equal(original.StoreName(), retrieved.StoreName())
	suite.Equal(original.PickupAddress(), retrieved.PickupAddress())
	suite.Equal(original.OrderName(), retrieved.OrderName())
	suite.Equal(delivery.StatusOpen, retrieved.Status())
	suite.Equal(0, retrieved.Priority())
	suite.Nil(retrieved.VolunteerID())
	suite.Require().NotNil(retrieved.StoreLocation())
	suite.InDelta(original.StoreLocation().Latitude(), retrieved.StoreLocation().Latitude(), 1e-9)
	suite.InDelta(original.StoreLocation().Longitude(), retrieved.StoreLocation().Longitude(), 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedAssignment() {
	ctx := context.Background()
	volunteerID := kernel.NewUUID()

	d := suite.createOpenDelivery()
	suite.tracker.On("TrackAggregate", d.ID(), d).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().NoError(d.Claim(volunteerID, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	suite.Require().NoError(d.Release(volunteerID, delivery.DefaultRequeuePolicy(), time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	// The dropped assignment and cleared claim timestamp must survive the
	// write, not just the status change.
	suite.Equal(delivery.StatusOpen, retrieved.Status())
	suite.Nil(retrieved.VolunteerID())
	suite.Nil(retrieved.ClaimedAt())
	suite.Equal(delivery.DefaultRequeuePolicy().ReleaseBoost, retrieved.Priority())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	ghost := suite.createOpenDelivery()

	err := suite.repository.Update(ctx, ghost)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestClaimIfOpen_OpenDelivery_Claims() {
	ctx := context.Background()
	volunteerID := kernel.NewUUID()

	d := suite.createOpenDelivery()
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	claimed, err := suite.repository.ClaimIfOpen(ctx, d.ID(), volunteerID, time.Now())
	suite.Require().NoError(err)
	suite.True(claimed)

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusClaimed, retrieved.Status())
	suite.Require().NotNil(retrieved.VolunteerID())
	suite.Equal(volunteerID, *retrieved.VolunteerID())
	suite.NotNil(retrieved.ClaimedAt())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestClaimIfOpen_AlreadyClaimed_ReturnsFalse() {
	ctx := context.Background()
	firstVolunteer := kernel.NewUUID()
	secondVolunteer := kernel.NewUUID()

	d := suite.createOpenDelivery()
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	claimed, err := suite.repository.ClaimIfOpen(ctx, d.ID(), firstVolunteer, time.Now())
	suite.Require().NoError(err)
	suite.True(claimed)

	claimed, err = suite.repository.ClaimIfOpen(ctx, d.ID(), secondVolunteer, time.Now())
	suite.Require().NoError(err)
	suite.False(claimed, "a claimed delivery must not be claimable again")

	// The losing attempt must not have overwritten the assignment.
	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.VolunteerID())
	suite.Equal(firstVolunteer, *retrieved.VolunteerID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestClaimIfOpen_ConcurrentClaimants_ExactlyOneWins() {
	ctx := context.Background()
	const claimants = 10

	d := suite.createOpenDelivery()
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	volunteerIDs := make([]kernel.UUID, claimants)
	for i := range volunteerIDs {
		volunteerIDs[i] = kernel.NewUUID()
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []kernel.UUID
	)
	start := make(chan struct{})

	for _, volunteerID := range volunteerIDs {
		wg.Add(1)
		go func(id kernel.UUID) {
			defer wg.Done()
			<-start

			claimed, err := suite.repository.ClaimIfOpen(ctx, d.ID(), id, time.Now())
			suite.NoError(err)
			if claimed {
				mu.Lock()
				winners = append(winners, id)
				mu.Unlock()
			}
		}(volunteerID)
	}

	close(start)
	wg.Wait()

	suite.Require().Len(winners, 1, "exactly one concurrent claimant must win")

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusClaimed, retrieved.Status())
	suite.Require().NotNil(retrieved.VolunteerID())
	suite.Equal(winners[0], *retrieved.VolunteerID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAllOpen_OrdersByPriorityThenAge() {
	ctx := context.Background()

	oldLowPriority := suite.createOpenDeliveryAt(time.Now().Add(-2 * time.Hour))
	newLowPriority := suite.createOpenDeliveryAt(time.Now().Add(-1 * time.Hour))
	boosted := suite.restoreOpenDeliveryWithPriority(5, time.Now())

	for _, d := range []*delivery.Delivery{oldLowPriority, newLowPriority, boosted} {
		suite.tracker.On("TrackAggregate", d.ID(), d).Once()
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	open, err := suite.repository.GetAllOpen(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(open, 3)
	suite.Equal(boosted.ID(), open[0].ID(), "boosted delivery shows first despite being newest")
	suite.Equal(oldLowPriority.ID(), open[1].ID())
	suite.Equal(newLowPriority.ID(), open[2].ID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAllOpen_ExcludesNonOpenStatuses() {
	ctx := context.Background()
	volunteerID := kernel.NewUUID()

	open := suite.createOpenDelivery()
	claimed := suite.createOpenDelivery()
	suite.Require().NoError(claimed.Claim(volunteerID, time.Now()))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, open))
	suite.Require().NoError(suite.repository.Add(ctx, claimed))

	pool, err := suite.repository.GetAllOpen(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(pool, 1)
	suite.Equal(open.ID(), pool[0].ID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestCountActiveForVolunteer() {
	ctx := context.Background()
	volunteerID := kernel.NewUUID()
	otherVolunteer := kernel.NewUUID()

	claimed := suite.createOpenDelivery()
	suite.Require().NoError(claimed.Claim(volunteerID, time.Now()))

	inTransit := suite.createOpenDelivery()
	suite.Require().NoError(inTransit.Claim(volunteerID, time.Now()))
	suite.Require().NoError(inTransit.MarkPickedUp(volunteerID, time.Now()))

	completed := suite.createOpenDelivery()
	suite.Require().NoError(completed.Claim(volunteerID, time.Now()))
	suite.Require().NoError(completed.Complete(volunteerID, time.Now()))

	someoneElses := suite.createOpenDelivery()
	suite.Require().NoError(someoneElses.Claim(otherVolunteer, time.Now()))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(4)
	for _, d := range []*delivery.Delivery{claimed, inTransit, completed, someoneElses} {
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	count, err := suite.repository.CountActiveForVolunteer(ctx, volunteerID)
	suite.Require().NoError(err)

	// Completed deliveries drop their assignment, so only the two live holds
	// count toward capacity.
	suite.Equal(2, count)

	active, err := suite.repository.GetActiveForVolunteer(ctx, volunteerID)
	suite.Require().NoError(err)
	suite.Len(active, 2)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveForRecipient_IncludesUnclaimedOpen() {
	ctx := context.Background()
	recipientID := kernel.NewUUID()
	volunteerID := kernel.NewUUID()

	open := suite.createOpenDeliveryForRecipient(recipientID)
	claimed := suite.createOpenDeliveryForRecipient(recipientID)
	suite.Require().NoError(claimed.Claim(volunteerID, time.Now()))

	canceled := suite.createOpenDeliveryForRecipient(recipientID)
	suite.Require().NoError(canceled.Cancel(
		delivery.ActorRecipient, "changed plans", delivery.DefaultRequeuePolicy(), time.Now()))

	unrelated := suite.createOpenDelivery()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(4)
	for _, d := range []*delivery.Delivery{open, claimed, canceled, unrelated} {
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	active, err := suite.repository.GetActiveForRecipient(ctx, recipientID)
	suite.Require().NoError(err)

	suite.Require().Len(active, 2)
	ids := map[kernel.UUID]bool{active[0].ID(): true, active[1].ID(): true}
	suite.True(ids[open.ID()])
	suite.True(ids[claimed.ID()])
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createOpenDelivery() *delivery.Delivery {
	return suite.createOpenDeliveryForRecipient(kernel.NewUUID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createOpenDeliveryForRecipient(
	recipientID kernel.UUID,
) *delivery.Delivery {
	location, err := kernel.NewGeoPoint(38.58, -121.49)
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		recipientID,
		"Valley Grocery",
		"1200 Market St",
		&location,
		"Order for Pat",
		time.Now().Add(3*time.Hour),
		"about 8 items",
		time.Now(),
	)
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createOpenDeliveryAt(createdAt time.Time) *delivery.Delivery {
	return suite.restoreOpenDeliveryWithPriority(0, createdAt)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) restoreOpenDeliveryWithPriority(
	priority int,
	createdAt time.Time,
) *delivery.Delivery {
	d, err := delivery.RestoreDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		nil,
		"Valley Grocery",
		"1200 Market St",
		nil,
		"Order for Pat",
		createdAt.Add(3*time.Hour),
		"",
		delivery.StatusOpen,
		priority,
		createdAt,
		nil, nil, nil, nil,
		delivery.ActorUnknown,
		"",
	)
	suite.Require().NoError(err)
	return d
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
