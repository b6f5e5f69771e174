package repository

import (
	"testing"

	"github.com/playroomhq/playroom-backend/internal/entity"
	"github.com/playroomhq/playroom-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	chatRepo := NewChatRepository(st.Storage, testTTL)

	// Given: a chat with a reacted message
	chat := entity.NewChat()
	index, err := chat.SubmitMessage("hello")
	require.NoError(t, err)
	require.NoError(t, chat.AddReaction(index, "👍"))

	// When: CreateOrUpdate is called
	err = chatRepo.CreateOrUpdate(ctx, "session-1", chat)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestChatRepository_GetBySessionID(t *testing.T) {
	t.Run("GetBySessionID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		chatRepo := NewChatRepository(st.Storage, testTTL)

		// Given: a stored chat with reactions and a highlight
		chat := entity.NewChat()
		index, err := chat.SubmitMessage("hello")
		require.NoError(t, err)
		require.NoError(t, chat.AddReaction(index, "👍"))
		require.NoError(t, chat.AddHighlight(index))
		require.NoError(t, chatRepo.CreateOrUpdate(ctx, "session-1", chat))

		// When: GetBySessionID is called with the same session
		retrievedChat, err := chatRepo.GetBySessionID(ctx, "session-1")

		// Then: message text and counters round-trip intact
		require.NoError(t, err)
		require.Len(t, retrievedChat.Messages, 1)
		assert.Equal(t, "hello", retrievedChat.Messages[0].Text)
		assert.Equal(t, 1, retrievedChat.Messages[0].Reactions["👍"])
		assert.Equal(t, 1, retrievedChat.Messages[0].Highlights)
	})

	t.Run("GetBySessionID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		chatRepo := NewChatRepository(st.Storage, testTTL)

		// When: GetBySessionID is called with an unknown session
		retrievedChat, err := chatRepo.GetBySessionID(ctx, "no-such-session")

		// Then: an ErrChatNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChatNotFound)
		assert.Nil(t, retrievedChat)
	})
}

func TestChatRepository_DeleteBySessionID(t *testing.T) {
	ctx, st := suite.New(t)

	chatRepo := NewChatRepository(st.Storage, testTTL)

	// Given: a stored chat
	chat := entity.NewChat()
	_, err := chat.SubmitMessage("hello")
	require.NoError(t, err)
	require.NoError(t, chatRepo.CreateOrUpdate(ctx, "session-1", chat))

	// When: DeleteBySessionID is called
	err = chatRepo.DeleteBySessionID(ctx, "session-1")

	// Then: the chat is gone
	require.NoError(t, err)
	_, err = chatRepo.GetBySessionID(ctx, "session-1")
	assert.ErrorIs(t, err, ErrChatNotFound)
}
