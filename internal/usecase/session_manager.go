package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/playroomhq/playroom-backend/internal/entity"
	"github.com/playroomhq/playroom-backend/internal/repository"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, sessionID string, game *entity.Game) error
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Game, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type chatRepo interface {
	CreateOrUpdate(ctx context.Context, sessionID string, chat *entity.Chat) error
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Chat, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

// SessionManager owns the board and chat of every live session. Commands
// against one session are serialized through a per-session mutex; different
// sessions never contend. State is written back to redis after every
// accepted command so a reconnect within the TTL resumes where it left off.
type SessionManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	chatRepo chatRepo

	// resetClearsChat is the host's coupling policy for "play again".
	resetClearsChat bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionManager(logger *slog.Logger, gameRepo gameRepo, chatRepo chatRepo, resetClearsChat bool) *SessionManager {
	return &SessionManager{
		logger: logger,

		gameRepo: gameRepo,
		chatRepo: chatRepo,

		resetClearsChat: resetClearsChat,

		locks: make(map[string]*sync.Mutex),
	}
}

// Connect resolves sessionID to its live state, minting a new session when
// the ID is empty or its state expired.
func (that *SessionManager) Connect(ctx context.Context, sessionID string) (string, *entity.Game, *entity.Chat, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := that.lockSession(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return "", nil, nil, err
	}

	chat, err := that.getOrCreateChat(ctx, sessionID)
	if err != nil {
		return "", nil, nil, err
	}

	that.logger.Info("session connected", "sessionID", sessionID)

	return sessionID, game, chat, nil
}

// ApplyMove plays the current turn's mark on cell. A rejected move returns
// the unchanged game together with the rejection.
func (that *SessionManager) ApplyMove(ctx context.Context, sessionID string, cell int) (*entity.Game, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = game.ApplyMove(cell); err != nil {
		return game, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// ResetGame restores the empty board. The chat is cleared too only when the
// host coupled the two resets via config.
func (that *SessionManager) ResetGame(ctx context.Context, sessionID string) (*entity.Game, *entity.Chat, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	game.Reset()
	if err = that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	chat, err := that.getOrCreateChat(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if that.resetClearsChat {
		chat.Reset()
		if err = that.chatRepo.CreateOrUpdate(ctx, sessionID, chat); err != nil {
			return nil, nil, fmt.Errorf("failed to update chat: %w", err)
		}
	}

	return game, chat, nil
}

// SubmitMessage appends a chat message and returns its index in the log.
func (that *SessionManager) SubmitMessage(ctx context.Context, sessionID, text string) (*entity.Chat, int, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	chat, err := that.getOrCreateChat(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	index, err := chat.SubmitMessage(text)
	if err != nil {
		return chat, 0, err
	}

	if err = that.chatRepo.CreateOrUpdate(ctx, sessionID, chat); err != nil {
		return nil, 0, fmt.Errorf("failed to update chat: %w", err)
	}

	return chat, index, nil
}

// AddReaction increments symbol's count on the addressed message.
func (that *SessionManager) AddReaction(ctx context.Context, sessionID string, messageIndex int, symbol string) (*entity.Chat, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	chat, err := that.getOrCreateChat(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = chat.AddReaction(messageIndex, symbol); err != nil {
		return chat, err
	}

	if err = that.chatRepo.CreateOrUpdate(ctx, sessionID, chat); err != nil {
		return nil, fmt.Errorf("failed to update chat: %w", err)
	}

	return chat, nil
}

// AddHighlight increments the trophy counter on the addressed message.
func (that *SessionManager) AddHighlight(ctx context.Context, sessionID string, messageIndex int) (*entity.Chat, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	chat, err := that.getOrCreateChat(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = chat.AddHighlight(messageIndex); err != nil {
		return chat, err
	}

	if err = that.chatRepo.CreateOrUpdate(ctx, sessionID, chat); err != nil {
		return nil, fmt.Errorf("failed to update chat: %w", err)
	}

	return chat, nil
}

// State returns the session's board and chat without mutating anything.
func (that *SessionManager) State(ctx context.Context, sessionID string) (*entity.Game, *entity.Chat, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	chat, err := that.getOrCreateChat(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	return game, chat, nil
}

// lockSession serializes command application for one session.
func (that *SessionManager) lockSession(sessionID string) func() {
	that.mu.Lock()
	lock, ok := that.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[sessionID] = lock
	}
	that.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

func (that *SessionManager) getOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetBySessionID(ctx, sessionID)

	if errors.Is(err, repository.ErrGameNotFound) {
		game = entity.NewGame()
		if err = that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		return game, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *SessionManager) getOrCreateChat(ctx context.Context, sessionID string) (*entity.Chat, error) {
	chat, err := that.chatRepo.GetBySessionID(ctx, sessionID)

	if errors.Is(err, repository.ErrChatNotFound) {
		chat = entity.NewChat()
		if err = that.chatRepo.CreateOrUpdate(ctx, sessionID, chat); err != nil {
			return nil, fmt.Errorf("failed to create chat: %w", err)
		}

		return chat, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return chat, nil
}
