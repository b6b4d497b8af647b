// Package message contains the in-app messages exchanged on a claimed
// delivery. Messages let the two parties coordinate pickup details without
// revealing contact information; they stay attached to the delivery they
// belong to.
package message

import (
	"errors"
	"strings"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

// MaxContentLength bounds a single message body.
const MaxContentLength = 1000

// ErrMessageIsNotConstructed is returned when a Message was not created via
// NewMessage or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage constructor")

// Message is one note sent between the recipient and the assigned volunteer
// of a delivery. Content is immutable once written; only the read marker
// changes afterwards.
type Message struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	sender     Sender
	senderID   kernel.UUID

	content string

	sentAt time.Time
	readAt *time.Time

	guard guard.ConstructorGuard
}

// NewMessage creates an unread message. content is trimmed and must be
// non-empty after trimming and at most MaxContentLength characters.
func NewMessage(
	id kernel.UUID,
	deliveryID kernel.UUID,
	sender Sender,
	senderID kernel.UUID,
	content string,
	sentAt time.Time,
) (*Message, error) {
	m := &Message{
		sentAt: sentAt,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setDeliveryID(deliveryID),
		m.setSender(sender),
		m.setSenderID(senderID),
		m.setContent(content),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMessage reconstructs a message from persistence, including its read
// marker.
func RestoreMessage(
	id kernel.UUID,
	deliveryID kernel.UUID,
	sender Sender,
	senderID kernel.UUID,
	content string,
	sentAt time.Time,
	readAt *time.Time,
) (*Message, error) {
	m, err := NewMessage(id, deliveryID, sender, senderID, content, sentAt)
	if err != nil {
		return nil, err
	}
	m.readAt = readAt
	return m, nil
}

// Validate ensures the message was built through a constructor.
func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

// IsEqual compares messages by identity.
func (m *Message) IsEqual(other *Message) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// MarkRead records when the other party saw the message. Marking an already
// read message keeps the original timestamp.
func (m *Message) MarkRead(at time.Time) {
	if m.readAt == nil {
		m.readAt = &at
	}
}

// IsRead reports whether the message has been seen by the other party.
func (m *Message) IsRead() bool { return m.readAt != nil }

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID { return m.id }

// DeliveryID returns the delivery the message belongs to.
func (m *Message) DeliveryID() kernel.UUID { return m.deliveryID }

// Sender returns which side of the delivery wrote the message.
func (m *Message) Sender() Sender { return m.sender }

// SenderID returns the author's identifier.
func (m *Message) SenderID() kernel.UUID { return m.senderID }

// Content returns the message body.
func (m *Message) Content() string { return m.content }

// SentAt returns when the message was sent.
func (m *Message) SentAt() time.Time { return m.sentAt }

// ReadAt returns when the message was read, or nil while unread.
func (m *Message) ReadAt() *time.Time { return m.readAt }

func (m *Message) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Message) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.deliveryID = id
	return nil
}

func (m *Message) setSender(sender Sender) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	m.sender = sender
	return nil
}

func (m *Message) setSenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.senderID = id
	return nil
}

func (m *Message) setContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	if len(content) > MaxContentLength {
		return errs.NewValueIsOutOfRangeError("content length", len(content), 1, MaxContentLength)
	}
	m.content = content
	return nil
}
