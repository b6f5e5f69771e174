package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playroomhq/playroom-backend/internal/entity"
	"github.com/redis/go-redis/v9"
)

var ErrChatNotFound = errors.New("chat not found")

type ChatRepository interface {
	CreateOrUpdate(ctx context.Context, sessionID string, chat *entity.Chat) error
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Chat, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type dbChat struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChatRepository(client *redis.Client, ttl time.Duration) ChatRepository {
	return &dbChat{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbChat) CreateOrUpdate(ctx context.Context, sessionID string, chat *entity.Chat) error {
	chatJSON, err := json.Marshal(chat)
	if err != nil {
		return fmt.Errorf("could not marshal chat: %w", err)
	}

	chatKey := "chat:" + sessionID
	if err = that.client.Set(ctx, chatKey, chatJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set chat: %w", err)
	}

	return nil
}

func (that *dbChat) GetBySessionID(ctx context.Context, sessionID string) (*entity.Chat, error) {
	chatKey := "chat:" + sessionID

	response, err := that.client.Get(ctx, chatKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrChatNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get chat by session: %w", err)
	}

	var existingChat entity.Chat
	if err = json.Unmarshal([]byte(response), &existingChat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat: %w", err)
	}

	return &existingChat, nil
}

func (that *dbChat) DeleteBySessionID(ctx context.Context, sessionID string) error {
	chatKey := "chat:" + sessionID

	if err := that.client.Del(ctx, chatKey).Err(); err != nil {
		return fmt.Errorf("failed to delete chat by session: %w", err)
	}

	return nil
}
