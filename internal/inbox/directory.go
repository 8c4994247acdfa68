// Package inbox provides the conversation directory behind the inbox views
// and the in-session reply threads.
package inbox

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/diogo/copilotdesk/internal/models"
)

//go:embed fixtures.yaml
var defaultFixture []byte

// Directory looks up conversations and their transcripts
type Directory interface {
	Conversations() []models.Conversation
	Conversation(id string) (models.Conversation, bool)
	Messages(id string) []models.Message
}

type fixtureFile struct {
	Conversations []fixtureConversation `yaml:"conversations"`
}

type fixtureConversation struct {
	ID       string `yaml:"id"`
	Customer struct {
		Name   string `yaml:"name"`
		Email  string `yaml:"email"`
		Source string `yaml:"source"`
	} `yaml:"customer"`
	Preview  string           `yaml:"preview"`
	Status   string           `yaml:"status"`
	Unread   int              `yaml:"unread"`
	Age      int              `yaml:"age"`
	Assignee string           `yaml:"assignee"`
	Team     string           `yaml:"team"`
	Messages []fixtureMessage `yaml:"messages"`
}

type fixtureMessage struct {
	Text         string `yaml:"text"`
	FromCustomer bool   `yaml:"from_customer"`
	Age          int    `yaml:"age"`
	Status       string `yaml:"status"`
}

// FixtureDirectory is a read-only Directory loaded from YAML
type FixtureDirectory struct {
	order         []string
	conversations map[string]models.Conversation
	messages      map[string][]models.Message
}

var _ Directory = (*FixtureDirectory)(nil)

// Default returns the built-in sample inbox
func Default() (*FixtureDirectory, error) {
	return Parse(defaultFixture, time.Now())
}

// LoadFile reads a fixture from path
func LoadFile(path string) (*FixtureDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data, time.Now())
}

// Parse decodes a fixture, resolving ages against now
func Parse(data []byte, now time.Time) (*FixtureDirectory, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	d := &FixtureDirectory{
		conversations: make(map[string]models.Conversation, len(file.Conversations)),
		messages:      make(map[string][]models.Message, len(file.Conversations)),
	}

	for i, fc := range file.Conversations {
		id := strings.TrimSpace(fc.ID)
		if id == "" {
			return nil, fmt.Errorf("conversation %d has no id", i)
		}
		if _, dup := d.conversations[id]; dup {
			return nil, fmt.Errorf("duplicate conversation id %q", id)
		}

		status, err := parseStatus(fc.Status)
		if err != nil {
			return nil, fmt.Errorf("conversation %s: %w", id, err)
		}

		msgs := make([]models.Message, 0, len(fc.Messages))
		for j, fm := range fc.Messages {
			delivery, err := parseDelivery(fm.Status)
			if err != nil {
				return nil, fmt.Errorf("conversation %s message %d: %w", id, j+1, err)
			}
			msgs = append(msgs, models.Message{
				ID:           strconv.Itoa(j + 1),
				Text:         fm.Text,
				FromCustomer: fm.FromCustomer,
				Timestamp:    now.Add(-time.Duration(fm.Age) * time.Minute),
				Status:       delivery,
			})
		}

		d.order = append(d.order, id)
		d.conversations[id] = models.Conversation{
			ID: id,
			Customer: models.Customer{
				Name:   fc.Customer.Name,
				Email:  fc.Customer.Email,
				Source: fc.Customer.Source,
			},
			Preview:      fc.Preview,
			Status:       status,
			Unread:       fc.Unread,
			LastActivity: now.Add(-time.Duration(fc.Age) * time.Minute),
			Assignee:     fc.Assignee,
			Team:         fc.Team,
		}
		d.messages[id] = msgs
	}

	return d, nil
}

// Conversations returns every conversation in fixture order
func (d *FixtureDirectory) Conversations() []models.Conversation {
	out := make([]models.Conversation, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.conversations[id])
	}
	return out
}

// Conversation looks up one conversation
func (d *FixtureDirectory) Conversation(id string) (models.Conversation, bool) {
	c, ok := d.conversations[id]
	return c, ok
}

// Messages returns a copy of the seeded transcript for id. Unknown ids yield
// an empty transcript.
func (d *FixtureDirectory) Messages(id string) []models.Message {
	src := d.messages[id]
	out := make([]models.Message, len(src))
	copy(out, src)
	return out
}

func parseStatus(s string) (models.ConversationStatus, error) {
	switch models.ConversationStatus(s) {
	case "":
		return models.StatusOpen, nil
	case models.StatusOpen, models.StatusWaiting, models.StatusClosed:
		return models.ConversationStatus(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func parseDelivery(s string) (models.DeliveryStatus, error) {
	switch models.DeliveryStatus(s) {
	case "":
		return models.DeliverySent, nil
	case models.DeliverySent, models.DeliveryDelivered, models.DeliveryRead:
		return models.DeliveryStatus(s), nil
	}
	return "", fmt.Errorf("unknown delivery status %q", s)
}
