package messagerepo_test

import (
	"context"
	"testing"
	"time"

	"communitydelivery/internal/adapters/out/postgres/messagerepo"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MessageRepositoryIntegrationTestSuite exercises the message repository
// against a real PostgreSQL instance, including the unread bookkeeping that
// excludes a reader's own messages.
type MessageRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *messagerepo.GormMessageRepository
}

func (suite *MessageRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&messagerepo.MessageDTO{}))
}

func (suite *MessageRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE messages").Error)
	suite.repository = messagerepo.NewGormMessageRepository(suite.db)
}

func (suite *MessageRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MessageRepositoryIntegrationTestSuite) newMessage(
	deliveryID, senderID kernel.UUID,
	sender message.Sender,
	content string,
	sentAt time.Time,
) *message.Message {
	m, err := message.NewMessage(kernel.NewUUID(), deliveryID, sender, senderID, content, sentAt)
	suite.Require().NoError(err)
	return m
}

func (suite *MessageRepositoryIntegrationTestSuite) TestAdd_GetForDelivery_RoundTrip() {
	ctx := context.Background()
	deliveryID := kernel.NewUUID()
	volunteerID := kernel.NewUUID()

	now := time.Now().UTC().Truncate(time.Microsecond)
	original := suite.newMessage(deliveryID, volunteerID, message.SenderVolunteer,
		"on my way to the store", now)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	messages, err := suite.repository.GetForDelivery(ctx, deliveryID, 0)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)

	loaded := messages[0]
	suite.True(loaded.IsEqual(original))
	suite.Equal(message.SenderVolunteer, loaded.Sender())
	suite.True(loaded.SenderID().IsEqual(volunteerID))
	suite.Equal("on my way to the store", loaded.Content())
	suite.False(loaded.IsRead())
}

func (suite *MessageRepositoryIntegrationTestSuite) TestGetForDelivery_OrderAndLimit() {
	ctx := context.Background()
	deliveryID := kernel.NewUUID()
	senderID := kernel.NewUUID()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, content := range []string{"first", "second", "third"} {
		m := suite.newMessage(deliveryID, senderID, message.SenderRecipient,
			content, base.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(suite.repository.Add(ctx, m))
	}

	messages, err := suite.repository.GetForDelivery(ctx, deliveryID, 2)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal("first", messages[0].Content())
	suite.Equal("second", messages[1].Content())
}

func (suite *MessageRepositoryIntegrationTestSuite) TestUnreadBookkeeping() {
	ctx := context.Background()
	deliveryID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	volunteerID := kernel.NewUUID()

	now := time.Now().UTC().Truncate(time.Microsecond)
	fromVolunteer := suite.newMessage(deliveryID, volunteerID, message.SenderVolunteer, "picked up", now)
	fromRecipient := suite.newMessage(deliveryID, recipientID, message.SenderRecipient, "thank you", now.Add(time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, fromVolunteer))
	suite.Require().NoError(suite.repository.Add(ctx, fromRecipient))

	// Each party sees only the other party's message as unread.
	count, err := suite.repository.CountUnreadFor(ctx, deliveryID, recipientID)
	suite.Require().NoError(err)
	suite.Equal(1, count)

	count, err = suite.repository.CountUnreadFor(ctx, deliveryID, volunteerID)
	suite.Require().NoError(err)
	suite.Equal(1, count)

	suite.Require().NoError(suite.repository.MarkAllRead(ctx, deliveryID, recipientID, now.Add(2*time.Minute)))

	count, err = suite.repository.CountUnreadFor(ctx, deliveryID, recipientID)
	suite.Require().NoError(err)
	suite.Equal(0, count)

	// The recipient's own message stays unread for the volunteer.
	count, err = suite.repository.CountUnreadFor(ctx, deliveryID, volunteerID)
	suite.Require().NoError(err)
	suite.Equal(1, count)

	messages, err := suite.repository.GetForDelivery(ctx, deliveryID, 0)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.True(messages[0].IsRead())
	suite.False(messages[1].IsRead())
}

func (suite *MessageRepositoryIntegrationTestSuite) TestGetForDelivery_ScopedToDelivery() {
	ctx := context.Background()
	deliveryID := kernel.NewUUID()
	otherDeliveryID := kernel.NewUUID()
	senderID := kernel.NewUUID()

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.newMessage(deliveryID, senderID, message.SenderRecipient, "here", now)))
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.newMessage(otherDeliveryID, senderID, message.SenderRecipient, "elsewhere", now)))

	messages, err := suite.repository.GetForDelivery(ctx, deliveryID, 0)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal("here", messages[0].Content())
}

func TestMessageRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MessageRepositoryIntegrationTestSuite))
}
