package entity

import (
	"strings"
	"testing"

	"github.com/playroomhq/playroom-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_SubmitMessage(t *testing.T) {
	t.Run("Trims text and appends in order", func(t *testing.T) {
		// Given: an empty chat
		chat := NewChat()

		// When: submitting two messages, the first with padding
		first, err := chat.SubmitMessage("  hi  ")
		require.NoError(t, err)
		second, err := chat.SubmitMessage("gg")
		require.NoError(t, err)

		// Then: indexes follow submission order and text is trimmed
		assert.Equal(t, 0, first)
		assert.Equal(t, 1, second)
		require.Len(t, chat.Messages, 2)
		assert.Equal(t, "hi", chat.Messages[0].Text)
		assert.Equal(t, "gg", chat.Messages[1].Text)
	})

	t.Run("Rejects whitespace-only text", func(t *testing.T) {
		// Given: a chat with one message
		chat := NewChat()
		_, err := chat.SubmitMessage("hello")
		require.NoError(t, err)

		// When: submitting blank text
		_, err = chat.SubmitMessage("   ")

		// Then: the submission is rejected and the log is unchanged
		require.ErrorIs(t, err, apperror.ErrEmptyMessage)
		assert.Len(t, chat.Messages, 1)
	})

	t.Run("Rejects over-length text", func(t *testing.T) {
		// Given: an empty chat
		chat := NewChat()

		// When: submitting text past the length bound
		_, err := chat.SubmitMessage(strings.Repeat("a", MaxMessageLength+1))

		// Then: the submission is rejected and the log is unchanged
		require.ErrorIs(t, err, apperror.ErrMessageTooLong)
		assert.Empty(t, chat.Messages)
	})

	t.Run("Accepts text exactly at the length bound", func(t *testing.T) {
		// Given: an empty chat
		chat := NewChat()

		// When: submitting text of exactly the maximum length
		index, err := chat.SubmitMessage(strings.Repeat("a", MaxMessageLength))

		// Then: the message is stored
		require.NoError(t, err)
		assert.Equal(t, 0, index)
	})
}

func TestChat_AddReaction(t *testing.T) {
	t.Run("Counts repeated reactions on the same symbol", func(t *testing.T) {
		// Given: a chat with one message
		chat := NewChat()
		_, err := chat.SubmitMessage("nice move")
		require.NoError(t, err)

		// When: reacting twice with 👍
		require.NoError(t, chat.AddReaction(0, "👍"))
		require.NoError(t, chat.AddReaction(0, "👍"))

		// Then: 👍 counts 2 and no other symbol was touched
		assert.Equal(t, 2, chat.Messages[0].Reactions["👍"])
		assert.Len(t, chat.Messages[0].Reactions, 1)
		assert.Zero(t, chat.Messages[0].Highlights)
	})

	t.Run("Tracks symbols independently", func(t *testing.T) {
		// Given: a chat with one message
		chat := NewChat()
		_, err := chat.SubmitMessage("wow")
		require.NoError(t, err)

		// When: reacting with two different symbols
		require.NoError(t, chat.AddReaction(0, "😂"))
		require.NoError(t, chat.AddReaction(0, "🎉"))

		// Then: each symbol counts once
		assert.Equal(t, 1, chat.Messages[0].Reactions["😂"])
		assert.Equal(t, 1, chat.Messages[0].Reactions["🎉"])
	})

	t.Run("Rejects symbol outside the alphabet", func(t *testing.T) {
		// Given: a chat with one message
		chat := NewChat()
		_, err := chat.SubmitMessage("hm")
		require.NoError(t, err)

		// When: reacting with an unknown symbol
		err = chat.AddReaction(0, "🦄")

		// Then: the reaction is rejected and counts are unchanged
		require.ErrorIs(t, err, apperror.ErrUnknownReaction)
		assert.Empty(t, chat.Messages[0].Reactions)
	})

	t.Run("Rejects the trophy on the reaction path", func(t *testing.T) {
		// Given: a chat with one message
		chat := NewChat()
		_, err := chat.SubmitMessage("gg")
		require.NoError(t, err)

		// When: sending the trophy as a plain reaction
		err = chat.AddReaction(0, HighlightSymbol)

		// Then: it is rejected; trophies go through AddHighlight
		require.ErrorIs(t, err, apperror.ErrUnknownReaction)
		assert.Zero(t, chat.Messages[0].Highlights)
	})

	t.Run("Rejects out-of-range index", func(t *testing.T) {
		// Given: an empty chat
		chat := NewChat()

		// When: reacting to a message that does not exist
		err := chat.AddReaction(0, "👍")

		// Then: the reaction is rejected
		require.ErrorIs(t, err, apperror.ErrMessageNotFound)
	})
}

func TestChat_AddHighlight(t *testing.T) {
	t.Run("Increments the trophy counter", func(t *testing.T) {
		// Given: a chat with one message
		chat := NewChat()
		_, err := chat.SubmitMessage("what a play")
		require.NoError(t, err)

		// When: highlighting it twice
		require.NoError(t, chat.AddHighlight(0))
		require.NoError(t, chat.AddHighlight(0))

		// Then: the counter reads 2 and reactions are untouched
		assert.Equal(t, 2, chat.Messages[0].Highlights)
		assert.Empty(t, chat.Messages[0].Reactions)
	})

	t.Run("Rejects out-of-range index", func(t *testing.T) {
		// Given: a chat with one message
		chat := NewChat()
		_, err := chat.SubmitMessage("hi")
		require.NoError(t, err)

		// When: highlighting a message that does not exist
		err = chat.AddHighlight(5)

		// Then: the highlight is rejected
		require.ErrorIs(t, err, apperror.ErrMessageNotFound)
	})
}

func TestChat_Reset(t *testing.T) {
	t.Run("Drops all messages", func(t *testing.T) {
		// Given: a chat with reacted messages
		chat := NewChat()
		_, err := chat.SubmitMessage("hi")
		require.NoError(t, err)
		require.NoError(t, chat.AddReaction(0, "👍"))

		// When: resetting the chat
		chat.Reset()

		// Then: the log is empty and new submissions start at index 0
		assert.Empty(t, chat.Messages)
		index, err := chat.SubmitMessage("again")
		require.NoError(t, err)
		assert.Equal(t, 0, index)
	})
}
