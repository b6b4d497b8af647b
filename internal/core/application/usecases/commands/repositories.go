// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence, with the audit entry written in
// the same transaction as the state change it records.
package commands

import (
	"context"

	"communitydelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler names the narrowest interface covering the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within
	// a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// VolunteerRepoFactory provides access to the volunteer repository
	// within a transaction.
	VolunteerRepoFactory interface {
		VolunteerRepository() ports.VolunteerRepository
	}

	// RecipientRepoFactory provides access to the recipient repository
	// within a transaction.
	RecipientRepoFactory interface {
		RecipientRepository() ports.RecipientRepository
	}

	// AuditRepoFactory provides access to the audit repository within a
	// transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// RatingRepoFactory provides access to the rating repository within a
	// transaction.
	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	// DeliveryUoW manages transactions for delivery transitions that touch
	// only the delivery row and the audit trail: pickup, cancellation, and
	// claim release.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		AuditRepoFactory
	}

	// DeliveryUoWFactory creates new DeliveryUoW instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// CreateDeliveryUoW manages transactions for delivery creation, which
	// verifies the requesting recipient before inserting.
	CreateDeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		RecipientRepoFactory
		AuditRepoFactory
	}

	// CreateDeliveryUoWFactory creates new CreateDeliveryUoW instances.
	CreateDeliveryUoWFactory interface {
		Create() CreateDeliveryUoW
	}

	// ClaimUoW manages transactions that coordinate delivery, volunteer, and
	// recipient state: claiming (eligibility needs the recipient's fuzzed
	// location) and completion.
	ClaimUoW interface {
		TxManager
		DeliveryRepoFactory
		VolunteerRepoFactory
		RecipientRepoFactory
		AuditRepoFactory
	}

	// ClaimUoWFactory creates new ClaimUoW instances.
	ClaimUoWFactory interface {
		Create() ClaimUoW
	}

	// VolunteerUoW manages transactions for volunteer registration and
	// vetting review.
	VolunteerUoW interface {
		TxManager
		VolunteerRepoFactory
		AuditRepoFactory
	}

	// VolunteerUoWFactory creates new VolunteerUoW instances.
	VolunteerUoWFactory interface {
		Create() VolunteerUoW
	}

	// RecipientUoW manages transactions for recipient registration and the
	// retention purge.
	RecipientUoW interface {
		TxManager
		RecipientRepoFactory
		AuditRepoFactory
	}

	// RecipientUoWFactory creates new RecipientUoW instances.
	RecipientUoWFactory interface {
		Create() RecipientUoW
	}

	// DeleteRecipientUoW manages transactions for account deletion, which
	// also cancels the recipient's active deliveries.
	DeleteRecipientUoW interface {
		TxManager
		RecipientRepoFactory
		DeliveryRepoFactory
		AuditRepoFactory
	}

	// DeleteRecipientUoWFactory creates new DeleteRecipientUoW instances.
	DeleteRecipientUoWFactory interface {
		Create() DeleteRecipientUoW
	}

	// ContactUoW manages transactions for contact disclosure, which reads
	// the delivery and recipient and appends the access entry.
	ContactUoW interface {
		TxManager
		DeliveryRepoFactory
		RecipientRepoFactory
		AuditRepoFactory
	}

	// ContactUoWFactory creates new ContactUoW instances.
	ContactUoWFactory interface {
		Create() ContactUoW
	}

	// MessageRepoFactory provides access to the message repository within a
	// transaction.
	MessageRepoFactory interface {
		MessageRepository() ports.MessageRepository
	}

	// MessageUoW manages transactions for delivery messaging: sending a
	// message (verified against the delivery's parties and status) and
	// marking a conversation read.
	MessageUoW interface {
		TxManager
		DeliveryRepoFactory
		MessageRepoFactory
		AuditRepoFactory
	}

	// MessageUoWFactory creates new MessageUoW instances.
	MessageUoWFactory interface {
		Create() MessageUoW
	}

	// RatingUoW manages transactions for rating submission, which verifies
	// the delivery and refreshes the volunteer's average.
	RatingUoW interface {
		TxManager
		RatingRepoFactory
		DeliveryRepoFactory
		VolunteerRepoFactory
		AuditRepoFactory
	}

	// RatingUoWFactory creates new RatingUoW instances.
	RatingUoWFactory interface {
		Create() RatingUoW
	}
)
