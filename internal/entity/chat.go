package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/playroomhq/playroom-backend/internal/apperror"
)

// MaxMessageLength bounds the trimmed text of a single message, in runes.
const MaxMessageLength = 500

// HighlightSymbol is the trophy acknowledgment. It is counted on its own
// field rather than in the reaction map.
const HighlightSymbol = "🏆"

// ReactionSymbols is the closed alphabet of reactions a message accepts.
var ReactionSymbols = []string{"👍", "❤️", "😂", "😮", "🎉"}

// Message is one chat entry. Text is immutable after submission; the
// counters only ever go up.
type Message struct {
	Text       string         `json:"text"`
	Reactions  map[string]int `json:"reactions,omitempty"`
	Highlights int            `json:"highlights,omitempty"`
}

// Chat is the append-only message log. A message is addressed by its
// position in the log; there is no deletion or edit.
type Chat struct {
	Messages []*Message `json:"messages"`
}

func NewChat() *Chat {
	return &Chat{}
}

// SubmitMessage trims text and appends it as a new message with zero
// counts, returning its index. Empty and over-length texts are rejected
// without touching the log.
func (that *Chat) SubmitMessage(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, apperror.ErrEmptyMessage
	}

	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return 0, fmt.Errorf("%w: %d runes", apperror.ErrMessageTooLong, utf8.RuneCountInString(trimmed))
	}

	that.Messages = append(that.Messages, &Message{
		Text:      trimmed,
		Reactions: make(map[string]int),
	})

	return len(that.Messages) - 1, nil
}

// AddReaction increments symbol's count on the addressed message by one.
// Unknown symbols and out-of-range indexes are rejected.
func (that *Chat) AddReaction(index int, symbol string) error {
	msg, err := that.message(index)
	if err != nil {
		return err
	}

	if !IsReactionSymbol(symbol) {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownReaction, symbol)
	}

	if msg.Reactions == nil {
		msg.Reactions = make(map[string]int)
	}
	msg.Reactions[symbol]++

	return nil
}

// AddHighlight increments the trophy counter on the addressed message.
func (that *Chat) AddHighlight(index int) error {
	msg, err := that.message(index)
	if err != nil {
		return err
	}

	msg.Highlights++

	return nil
}

// Reset drops all messages. Whether a game reset also resets the chat is
// the host's call, not this entity's.
func (that *Chat) Reset() {
	that.Messages = nil
}

func (that *Chat) message(index int) (*Message, error) {
	if index < 0 || index >= len(that.Messages) {
		return nil, fmt.Errorf("%w: index %d", apperror.ErrMessageNotFound, index)
	}

	return that.Messages[index], nil
}

func IsReactionSymbol(symbol string) bool {
	for _, known := range ReactionSymbols {
		if known == symbol {
			return true
		}
	}

	return false
}
