package api_test

import (
	"context"
	"testing"

	"github.com/diogo/copilotdesk/internal/api"
	"github.com/diogo/copilotdesk/internal/models"
)

func TestMockGeminiClient(t *testing.T) {
	mock := &api.MockGeminiClient{
		APIKeySet: true,
		Model:     models.Model15Flash,
		GenerateContentVal: &models.ModelOutput{
			Candidates: []models.Candidate{
				{Text: "Mock response"},
			},
		},
	}

	// Verify interface compliance
	var client api.GeminiClientInterface = mock

	resp, err := client.GenerateContent(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}

	if resp.Text() != "Mock response" {
		t.Errorf("Expected 'Mock response', got '%s'", resp.Text())
	}

	if mock.Calls() != 1 {
		t.Errorf("Expected 1 call, got %d", mock.Calls())
	}

	if mock.LastPrompt != "Hello" {
		t.Errorf("Expected prompt 'Hello', got '%s'", mock.LastPrompt)
	}

	if !client.HasAPIKey() {
		t.Error("HasAPIKey should reflect APIKeySet")
	}
}
