package api

import (
	"context"
	"sync"

	"github.com/diogo/copilotdesk/internal/models"
)

// MockGeminiClient is a mock implementation of GeminiClientInterface for testing
type MockGeminiClient struct {
	// Mock return values
	APIKeySet          bool
	Model              models.Model
	GenerateContentVal *models.ModelOutput
	GenerateContentErr error

	// Call counters/recorders
	mu                   sync.Mutex
	GenerateContentCalls int
	LastPrompt           string
}

// Ensure MockGeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*MockGeminiClient)(nil)

func (m *MockGeminiClient) GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateContentCalls++
	m.LastPrompt = prompt
	return m.GenerateContentVal, m.GenerateContentErr
}

func (m *MockGeminiClient) HasAPIKey() bool {
	return m.APIKeySet
}

func (m *MockGeminiClient) GetModel() models.Model {
	return m.Model
}

// Calls returns how many times GenerateContent ran
func (m *MockGeminiClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GenerateContentCalls
}
