package copilot

import "sync"

// Bridge hands a copilot reply to the reply composer. A handoff is consumed
// at most once.
type Bridge struct {
	mu      sync.Mutex
	pending string
	set     bool
}

// Handoff stores text for the composer, replacing any unconsumed handoff
func (b *Bridge) Handoff(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = text
	b.set = text != ""
}

// Consume returns the pending text and clears it. ok is false when there is
// nothing pending.
func (b *Bridge) Consume() (text string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.set {
		return "", false
	}
	text = b.pending
	b.pending = ""
	b.set = false
	return text, true
}

// Pending reports whether a handoff is waiting
func (b *Bridge) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set
}
