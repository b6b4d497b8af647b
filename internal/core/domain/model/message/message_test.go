package message_test

import (
	"strings"
	"testing"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
	"communitydelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := kernel.NewUUID()
		deliveryID := kernel.NewUUID()
		senderID := kernel.NewUUID()
		sentAt := time.Now()

		m, err := message.NewMessage(id, deliveryID, message.SenderVolunteer,
			senderID, "at the store, they are out of oat milk", sentAt)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.ID().IsEqual(id))
		assert.True(t, m.DeliveryID().IsEqual(deliveryID))
		assert.Equal(t, message.SenderVolunteer, m.Sender())
		assert.True(t, m.SenderID().IsEqual(senderID))
		assert.Equal(t, "at the store, they are out of oat milk", m.Content())
		assert.Equal(t, sentAt, m.SentAt())
		assert.False(t, m.IsRead())
		assert.Nil(t, m.ReadAt())
	})

	t.Run("content_is_trimmed", func(t *testing.T) {
		m, err := message.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			message.SenderRecipient, kernel.NewUUID(), "  leave at the door  ", time.Now())

		require.NoError(t, err)
		assert.Equal(t, "leave at the door", m.Content())
	})

	t.Run("content_is_required", func(t *testing.T) {
		for _, content := range []string{"", "   ", "\n\t"} {
			_, err := message.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
				message.SenderRecipient, kernel.NewUUID(), content, time.Now())
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("content_length_bound", func(t *testing.T) {
		longest := strings.Repeat("a", message.MaxContentLength)
		_, err := message.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			message.SenderRecipient, kernel.NewUUID(), longest, time.Now())
		require.NoError(t, err)

		_, err = message.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			message.SenderRecipient, kernel.NewUUID(), longest+"a", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("requires_valid_sender", func(t *testing.T) {
		_, err := message.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			message.SenderUnknown, kernel.NewUUID(), "hello", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires_all_references", func(t *testing.T) {
		_, err := message.NewMessage(kernel.UUID{}, kernel.NewUUID(),
			message.SenderRecipient, kernel.NewUUID(), "hello", time.Now())
		require.Error(t, err)

		_, err = message.NewMessage(kernel.NewUUID(), kernel.UUID{},
			message.SenderRecipient, kernel.NewUUID(), "hello", time.Now())
		require.Error(t, err)

		_, err = message.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			message.SenderRecipient, kernel.UUID{}, "hello", time.Now())
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var m *message.Message
		require.Error(t, m.Validate())
		require.Error(t, (&message.Message{}).Validate())
	})
}

func TestMessage_MarkRead(t *testing.T) {
	m, err := message.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
		message.SenderVolunteer, kernel.NewUUID(), "picked everything up", time.Now())
	require.NoError(t, err)

	first := time.Now()
	m.MarkRead(first)
	require.True(t, m.IsRead())
	require.NotNil(t, m.ReadAt())
	assert.Equal(t, first, *m.ReadAt())

	// A second read keeps the original timestamp.
	m.MarkRead(first.Add(time.Hour))
	assert.Equal(t, first, *m.ReadAt())
}

func TestRestoreMessage(t *testing.T) {
	readAt := time.Now()
	m, err := message.RestoreMessage(kernel.NewUUID(), kernel.NewUUID(),
		message.SenderRecipient, kernel.NewUUID(), "thank you!", readAt.Add(-time.Minute), &readAt)

	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.True(t, m.IsRead())
	assert.Equal(t, readAt, *m.ReadAt())
}

func TestSenderFromString(t *testing.T) {
	for str, want := range map[string]message.Sender{
		"recipient": message.SenderRecipient,
		"volunteer": message.SenderVolunteer,
	} {
		got, err := message.SenderFromString(str)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, str, got.String())
	}

	_, err := message.SenderFromString("admin")
	require.Error(t, err)

	_, err = message.SenderFromString("unknown")
	require.Error(t, err)
}
