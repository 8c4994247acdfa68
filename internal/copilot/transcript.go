package copilot

import "github.com/diogo/copilotdesk/internal/models"

// Transcript is the append-only, oldest-first log of copilot turns.
// It is owned by a single view and is not safe for concurrent use.
type Transcript struct {
	turns []models.ChatTurn
}

// Append adds turn at the end
func (t *Transcript) Append(turn models.ChatTurn) {
	t.turns = append(t.turns, turn)
}

// Turns returns a copy of the turns in display order
func (t *Transcript) Turns() []models.ChatTurn {
	out := make([]models.ChatTurn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Last returns the newest turn
func (t *Transcript) Last() (models.ChatTurn, bool) {
	if len(t.turns) == 0 {
		return models.ChatTurn{}, false
	}
	return t.turns[len(t.turns)-1], true
}

// LastReply returns the newest assistant turn
func (t *Transcript) LastReply() (models.ChatTurn, bool) {
	for i := len(t.turns) - 1; i >= 0; i-- {
		if t.turns[i].Origin == models.OriginAssistant {
			return t.turns[i], true
		}
	}
	return models.ChatTurn{}, false
}
