package copilot

import (
	"context"
	"errors"
	"strings"

	apierrors "github.com/diogo/copilotdesk/internal/errors"
	"github.com/diogo/copilotdesk/internal/models"
)

var (
	// ErrEmptyPrompt is returned for empty or whitespace-only input
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrBusy is returned while a query is outstanding
	ErrBusy = errors.New("a copilot query is already in flight")
)

// Panel is the caller of Service.Submit. It owns the transcript and the
// in-flight flag that keeps the input disabled while a query runs.
// Panel is driven from a single UI goroutine.
type Panel struct {
	service    *Service
	transcript Transcript
	busy       bool
}

// NewPanel creates a Panel over service
func NewPanel(service *Service) *Panel {
	return &Panel{service: service}
}

// Service returns the query service
func (p *Panel) Service() *Service {
	return p.service
}

// Busy reports whether a query is outstanding
func (p *Panel) Busy() bool {
	return p.busy
}

// Transcript returns the panel transcript
func (p *Panel) Transcript() *Transcript {
	return &p.transcript
}

// Begin validates prompt and records the user turn. A missing credential
// returns apierrors.ErrMissingCredential as a blocking notice and records
// nothing.
func (p *Panel) Begin(prompt string) (models.ChatTurn, error) {
	if strings.TrimSpace(prompt) == "" {
		return models.ChatTurn{}, ErrEmptyPrompt
	}
	if p.busy {
		return models.ChatTurn{}, ErrBusy
	}
	if !p.service.HasCredential() {
		return models.ChatTurn{}, apierrors.ErrMissingCredential
	}

	turn := models.NewChatTurn(models.OriginUser, prompt)
	p.transcript.Append(turn)
	p.busy = true
	return turn, nil
}

// Complete records the assistant turn for result and re-enables input
func (p *Panel) Complete(result models.Result) models.ChatTurn {
	turn := models.NewChatTurn(models.OriginAssistant, result.Text())
	p.transcript.Append(turn)
	p.busy = false
	return turn
}

// Ask runs Begin, Submit and Complete synchronously
func (p *Panel) Ask(ctx context.Context, prompt string) (models.ChatTurn, models.Result, error) {
	if _, err := p.Begin(prompt); err != nil {
		return models.ChatTurn{}, models.Result{}, err
	}

	result, ok := p.service.Submit(ctx, prompt)
	if !ok {
		p.busy = false
		return models.ChatTurn{}, models.Result{}, ErrEmptyPrompt
	}

	return p.Complete(result), result, nil
}
