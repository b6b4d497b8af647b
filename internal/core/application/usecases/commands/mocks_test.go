package commands_test

import (
	"context"
	"time"

	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/domain/model/audit"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
	"communitydelivery/internal/core/domain/model/rating"
	"communitydelivery/internal/core/domain/model/recipient"
	"communitydelivery/internal/core/domain/model/volunteer"
	"communitydelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ClaimIfOpen(
	ctx context.Context,
	id kernel.UUID,
	volunteerID kernel.UUID,
	at time.Time,
) (bool, error) {
	args := m.Called(ctx, id, volunteerID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllOpen(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetActiveForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountActiveForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) (int, error) {
	args := m.Called(ctx, volunteerID)
	return args.Int(0), args.Error(1)
}

func (m *MockDeliveryRepository) GetActiveForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockVolunteerRepository struct{ mock.Mock }

func (m *MockVolunteerRepository) Add(ctx context.Context, v *volunteer.Volunteer) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVolunteerRepository) Update(ctx context.Context, v *volunteer.Volunteer) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVolunteerRepository) Get(ctx context.Context, id kernel.UUID) (*volunteer.Volunteer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*volunteer.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) GetAllPending(ctx context.Context) ([]*volunteer.Volunteer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*volunteer.Volunteer), args.Error(1)
}

type MockRecipientRepository struct{ mock.Mock }

func (m *MockRecipientRepository) Add(ctx context.Context, r *recipient.Recipient) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipientRepository) Update(ctx context.Context, r *recipient.Recipient) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipientRepository) Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipient.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) GetAllInactiveSince(
	ctx context.Context,
	cutoff time.Time,
) ([]*recipient.Recipient, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipient.Recipient), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockAuditRepository) GetForDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]*audit.Entry, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) GetForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
	limit int,
) ([]*audit.Entry, error) {
	args := m.Called(ctx, volunteerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) GetForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
	limit int,
) ([]*audit.Entry, error) {
	args := m.Called(ctx, recipientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) CountCompletedForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) (int, error) {
	args := m.Called(ctx, volunteerID)
	return args.Int(0), args.Error(1)
}

type MockRatingRepository struct{ mock.Mock }

func (m *MockRatingRepository) Add(ctx context.Context, r *rating.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRatingRepository) GetForDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) (*rating.Rating, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rating.Rating), args.Error(1)
}

func (m *MockRatingRepository) AverageForVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, volunteerID)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Add(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) GetForDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
	limit int,
) ([]*message.Message, error) {
	args := m.Called(ctx, deliveryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.Message), args.Error(1)
}

func (m *MockMessageRepository) CountUnreadFor(
	ctx context.Context,
	deliveryID kernel.UUID,
	readerID kernel.UUID,
) (int, error) {
	args := m.Called(ctx, deliveryID, readerID)
	return args.Int(0), args.Error(1)
}

func (m *MockMessageRepository) MarkAllRead(
	ctx context.Context,
	deliveryID kernel.UUID,
	readerID kernel.UUID,
	at time.Time,
) error {
	args := m.Called(ctx, deliveryID, readerID, at)
	return args.Error(0)
}

// MockUoW satisfies every narrow unit-of-work interface in the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) VolunteerRepository() ports.VolunteerRepository {
	args := m.Called()
	return args.Get(0).(ports.VolunteerRepository)
}

func (m *MockUoW) RecipientRepository() ports.RecipientRepository {
	args := m.Called()
	return args.Get(0).(ports.RecipientRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

func (m *MockUoW) RatingRepository() ports.RatingRepository {
	args := m.Called()
	return args.Get(0).(ports.RatingRepository)
}

func (m *MockUoW) MessageRepository() ports.MessageRepository {
	args := m.Called()
	return args.Get(0).(ports.MessageRepository)
}

type MockClaimUoWFactory struct{ mock.Mock }

func (m *MockClaimUoWFactory) Create() commands.ClaimUoW {
	args := m.Called()
	return args.Get(0).(commands.ClaimUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockCreateDeliveryUoWFactory struct{ mock.Mock }

func (m *MockCreateDeliveryUoWFactory) Create() commands.CreateDeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateDeliveryUoW)
}

type MockVolunteerUoWFactory struct{ mock.Mock }

func (m *MockVolunteerUoWFactory) Create() commands.VolunteerUoW {
	args := m.Called()
	return args.Get(0).(commands.VolunteerUoW)
}

type MockRecipientUoWFactory struct{ mock.Mock }

func (m *MockRecipientUoWFactory) Create() commands.RecipientUoW {
	args := m.Called()
	return args.Get(0).(commands.RecipientUoW)
}

type MockDeleteRecipientUoWFactory struct{ mock.Mock }

func (m *MockDeleteRecipientUoWFactory) Create() commands.DeleteRecipientUoW {
	args := m.Called()
	return args.Get(0).(commands.DeleteRecipientUoW)
}

type MockContactUoWFactory struct{ mock.Mock }

func (m *MockContactUoWFactory) Create() commands.ContactUoW {
	args := m.Called()
	return args.Get(0).(commands.ContactUoW)
}

type MockMessageUoWFactory struct{ mock.Mock }

func (m *MockMessageUoWFactory) Create() commands.MessageUoW {
	args := m.Called()
	return args.Get(0).(commands.MessageUoW)
}

type MockRatingUoWFactory struct{ mock.Mock }

func (m *MockRatingUoWFactory) Create() commands.RatingUoW {
	args := m.Called()
	return args.Get(0).(commands.RatingUoW)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

type MockPIICodec struct{ mock.Mock }

func (m *MockPIICodec) Encrypt(plaintext string) ([]byte, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPIICodec) Decrypt(ciphertext []byte) (string, error) {
	args := m.Called(ciphertext)
	return args.String(0), args.Error(1)
}

// NoopNotifier keeps handler tests focused on persistence; notification is
// best effort and asserted separately where it matters.
type NoopNotifier struct{}

func (NoopNotifier) NotifyDeliveryClaimed(context.Context, kernel.UUID, kernel.UUID) error {
	return nil
}

func (NoopNotifier) NotifyDeliveryCompleted(context.Context, kernel.UUID, kernel.UUID) error {
	return nil
}

func (NoopNotifier) NotifyDeliveryRequeued(context.Context, kernel.UUID, kernel.UUID) error {
	return nil
}
