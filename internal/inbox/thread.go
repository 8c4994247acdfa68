package inbox

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/diogo/copilotdesk/internal/models"
)

// Thread is the transcript of one conversation plus the replies sent during
// this session.
type Thread struct {
	conversationID string
	messages       []models.Message
	nextID         int
	now            func() time.Time
}

// Send appends an agent reply. Text is trimmed; empty text is ignored.
func (t *Thread) Send(text string) (models.Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, false
	}

	t.nextID++
	msg := models.Message{
		ID:        t.conversationID + "-r" + strconv.Itoa(t.nextID),
		Text:      text,
		Timestamp: t.now(),
		Status:    models.DeliverySent,
	}
	t.messages = append(t.messages, msg)
	return msg, true
}

// Messages returns the thread oldest first
func (t *Thread) Messages() []models.Message {
	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// ConversationID returns the conversation the thread belongs to
func (t *Thread) ConversationID() string {
	return t.conversationID
}

// Session keeps one Thread per conversation for the lifetime of the process.
// Nothing is written to disk.
type Session struct {
	dir     Directory
	mu      sync.RWMutex
	threads map[string]*Thread
	now     func() time.Time
}

// NewSession creates a session over dir
func NewSession(dir Directory) *Session {
	return &Session{
		dir:     dir,
		threads: make(map[string]*Thread),
		now:     time.Now,
	}
}

// Directory returns the backing directory
func (s *Session) Directory() Directory {
	return s.dir
}

// Thread returns the thread for id, seeding it from the directory on first use
func (s *Session) Thread(id string) *Thread {
	s.mu.RLock()
	t, ok := s.threads[id]
	s.mu.RUnlock()
	if ok {
		return t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.threads[id]; ok {
		return t
	}
	t = &Thread{
		conversationID: id,
		messages:       s.dir.Messages(id),
		now:            s.now,
	}
	s.threads[id] = t
	return t
}
