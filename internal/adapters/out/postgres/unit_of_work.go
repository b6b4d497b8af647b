// Package postgres provides the GORM-based Unit of Work and the transaction
// plumbing shared by the repository packages underneath it.
//
// Every command handler runs inside one unit of work: the delivery state
// change, the volunteer counter bump and the audit entry land in the same
// database transaction or not at all. Repository accessors return instances
// bound to the active transaction, so a handler never has to thread *gorm.DB
// handles around.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.DeliveryRepository().Update(ctx, delivery); err != nil {
//	    return err
//	}
//	if err := uow.AuditRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each Create() call yields a fresh instance with its own transaction state;
// concurrent operations must not share one.
package postgres

import (
	"context"

	"communitydelivery/internal/adapters/out/postgres/auditrepo"
	"communitydelivery/internal/adapters/out/postgres/deliveryrepo"
	"communitydelivery/internal/adapters/out/postgres/messagerepo"
	"communitydelivery/internal/adapters/out/postgres/ratingrepo"
	"communitydelivery/internal/adapters/out/postgres/recipientrepo"
	"communitydelivery/internal/adapters/out/postgres/volunteerrepo"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Kept for post-commit processing such as notification fan-out.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one database
// connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the delivery,
// volunteer, recipient, audit and rating repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op rather than a nested
// transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the current transaction. After commit the instance holds
// no transaction and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Safe to defer after Commit: a
// rollback with no open transaction returns nil.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DeliveryRepository returns a delivery repository bound to the current
// transaction, or to the base connection when none is open.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

// VolunteerRepository returns a volunteer repository bound to the current
// transaction.
func (uow *GormUnitOfWork) VolunteerRepository() ports.VolunteerRepository {
	return volunteerrepo.NewGormVolunteerRepository(uow.conn(), uow)
}

// RecipientRepository returns a recipient repository bound to the current
// transaction.
func (uow *GormUnitOfWork) RecipientRepository() ports.RecipientRepository {
	return recipientrepo.NewGormRecipientRepository(uow.conn(), uow)
}

// AuditRepository returns an audit repository bound to the current
// transaction.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// RatingRepository returns a rating repository bound to the current
// transaction.
func (uow *GormUnitOfWork) RatingRepository() ports.RatingRepository {
	return ratingrepo.NewGormRatingRepository(uow.conn())
}

// MessageRepository returns a message repository bound to the current
// transaction.
func (uow *GormUnitOfWork) MessageRepository() ports.MessageRepository {
	return messagerepo.NewGormMessageRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by the repositories on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
