package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and repositories bound to the same transaction, so a
// status transition and its audit entry commit or roll back together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer; a
	// rollback after commit is a no-op.
	Rollback(ctx context.Context) error

	// DeliveryRepository returns a DeliveryRepository bound to the current
	// transaction.
	DeliveryRepository() DeliveryRepository

	// VolunteerRepository returns a VolunteerRepository bound to the current
	// transaction.
	VolunteerRepository() VolunteerRepository

	// RecipientRepository returns a RecipientRepository bound to the current
	// transaction.
	RecipientRepository() RecipientRepository

	// AuditRepository returns an AuditRepository bound to the current
	// transaction.
	AuditRepository() AuditRepository

	// RatingRepository returns a RatingRepository bound to the current
	// transaction.
	RatingRepository() RatingRepository

	// MessageRepository returns a MessageRepository bound to the current
	// transaction.
	MessageRepository() MessageRepository
}
