package models

import (
	"time"

	"github.com/google/uuid"
)

// Origin attributes a ChatTurn to a side of the copilot conversation
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// ChatTurn is one message exchanged in the copilot panel.
// Turns are values and are never mutated after creation.
type ChatTurn struct {
	ID        string
	Text      string
	Origin    Origin
	CreatedAt time.Time
}

// NewChatTurn creates a turn with a fresh ID stamped now
func NewChatTurn(origin Origin, text string) ChatTurn {
	return ChatTurn{
		ID:        uuid.NewString(),
		Text:      text,
		Origin:    origin,
		CreatedAt: time.Now(),
	}
}

// IsUser reports whether the turn was typed by the user
func (t ChatTurn) IsUser() bool {
	return t.Origin == OriginUser
}
