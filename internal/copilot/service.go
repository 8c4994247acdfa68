// Package copilot implements the assistant panel: the query service that
// turns a prompt into a classified Result, the append-only transcript, the
// panel controller that owns the in-flight guard, and the composer bridge.
package copilot

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diogo/copilotdesk/internal/api"
	apierrors "github.com/diogo/copilotdesk/internal/errors"
	"github.com/diogo/copilotdesk/internal/models"
)

// Service turns free-text prompts into Results. It holds no state beyond the
// request in flight and never returns an error: every failure becomes a
// Failure Result.
type Service struct {
	client api.GeminiClientInterface
	logger zerolog.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for classification diagnostics
func WithServiceLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service backed by client
func NewService(client api.GeminiClientInterface, opts ...ServiceOption) *Service {
	s := &Service{
		client: client,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasCredential reports whether an API key is configured
func (s *Service) HasCredential() bool {
	return s.client != nil && s.client.HasAPIKey()
}

// Submit sends prompt to the completion endpoint once. ok is false when the
// prompt is empty after trimming; nothing is sent in that case.
func (s *Service) Submit(ctx context.Context, prompt string) (result models.Result, ok bool) {
	if strings.TrimSpace(prompt) == "" {
		return models.Result{}, false
	}

	if !s.HasCredential() {
		s.logger.Warn().Msg("copilot query without API key")
		return models.Failure(apierrors.CategoryMissingCredential), true
	}

	output, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		category := apierrors.Classify(err)
		s.logger.Error().
			Err(err).
			Str("category", category.String()).
			Int("status", apierrors.GetHTTPStatus(err)).
			Msg("copilot query failed")
		return models.Failure(category), true
	}

	if output == nil || len(output.Candidates) == 0 {
		return models.Failure(apierrors.CategoryUnknown), true
	}

	return models.Success(output.Text()), true
}
