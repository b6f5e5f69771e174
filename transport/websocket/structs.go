package websocket

import (
	"encoding/json"

	"github.com/playroomhq/playroom-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries command arguments from the client and state back to it.
type Payload struct {
	SessionID    string `json:"session_id,omitempty"`
	Cell         int    `json:"cell,omitempty"`
	Text         string `json:"text,omitempty"`
	MessageIndex int    `json:"message_index,omitempty"`
	Symbol       string `json:"symbol,omitempty"`

	Game  *GamePayload `json:"game,omitempty"`
	Chat  *entity.Chat `json:"chat,omitempty"`
	Error string       `json:"error,omitempty"`
}

// GamePayload is the board projection sent to the presentation layer.
// Outcome is derived server-side so the client never recomputes it.
type GamePayload struct {
	Board   [9]string      `json:"board"`
	Turn    string         `json:"turn"`
	Outcome entity.Outcome `json:"outcome"`
}

func newGamePayload(game *entity.Game) *GamePayload {
	if game == nil {
		return nil
	}

	return &GamePayload{
		Board:   game.Board,
		Turn:    game.Turn,
		Outcome: game.Outcome(),
	}
}
