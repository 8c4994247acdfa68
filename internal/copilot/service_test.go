package copilot

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/diogo/copilotdesk/internal/api"
	apierrors "github.com/diogo/copilotdesk/internal/errors"
	"github.com/diogo/copilotdesk/internal/models"
)

// endpoint starts a fake generateContent server
func endpoint(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSubmit_EmptyPromptIsNoop(t *testing.T) {
	mock := &api.MockGeminiClient{APIKeySet: true}
	svc := NewService(mock)

	for _, prompt := range []string{"", " ", "\t\n", "   \r\n  "} {
		if _, ok := svc.Submit(context.Background(), prompt); ok {
			t.Errorf("Submit(%q) should be a no-op", prompt)
		}
	}

	if mock.Calls() != 0 {
		t.Errorf("expected no network calls, got %d", mock.Calls())
	}
}

func TestSubmit_MissingCredential(t *testing.T) {
	srv, hits := endpoint(t, http.StatusOK, `{}`)
	svc := NewService(api.NewClient("", api.WithBaseURL(srv.URL)))

	for _, prompt := range []string{"hello", "x", "  padded  "} {
		result, ok := svc.Submit(context.Background(), prompt)
		if !ok {
			t.Fatalf("Submit(%q) should not be a no-op", prompt)
		}
		if result.IsSuccess() {
			t.Fatal("expected failure")
		}
		if result.Category() != apierrors.CategoryMissingCredential {
			t.Errorf("Category() = %v, want MissingCredential", result.Category())
		}
	}

	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("expected no requests, got %d", atomic.LoadInt32(hits))
	}
}

func TestSubmit_Classification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		category apierrors.Category
		message  string
	}{
		{"400", 400, `{"error":{"message":"API key not valid. Please pass a valid API key."}}`, apierrors.CategoryBadRequest, "Invalid request. Please check your API key."},
		{"401", 401, `{"error":{"message":"unauthenticated"}}`, apierrors.CategoryUnauthorized, "API key is invalid or missing permissions."},
		{"403", 403, `{"error":{"message":"forbidden"}}`, apierrors.CategoryForbidden, "API key doesn't have permission to access the service."},
		{"429", 429, `{"error":{"message":"Resource has been exhausted"}}`, apierrors.CategoryRateLimited, "Rate limit exceeded. Please try again later."},
		{"500", 500, `{"error":{"message":"internal"}}`, apierrors.CategoryUnknown, "Sorry, I encountered an error. Please try again."},
		{"200 empty candidates", 200, `{"candidates":[]}`, apierrors.CategoryUnknown, "Sorry, I encountered an error. Please try again."},
		{"200 malformed", 200, `not json`, apierrors.CategoryUnknown, "Sorry, I encountered an error. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := endpoint(t, tt.status, tt.body)
			svc := NewService(api.NewClient("key", api.WithBaseURL(srv.URL)))

			result, ok := svc.Submit(context.Background(), "hello")
			if !ok {
				t.Fatal("Submit should not be a no-op")
			}
			if result.IsSuccess() {
				t.Fatalf("expected failure, got success %q", result.Reply())
			}
			if result.Category() != tt.category {
				t.Errorf("Category() = %v, want %v", result.Category(), tt.category)
			}
			if result.Message() != tt.message {
				t.Errorf("Message() = %q, want %q", result.Message(), tt.message)
			}
			if atomic.LoadInt32(hits) != 1 {
				t.Errorf("expected exactly one attempt, got %d", atomic.LoadInt32(hits))
			}
		})
	}
}

func TestSubmit_SuccessVerbatim(t *testing.T) {
	srv, _ := endpoint(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Hello"}]}}]}`)
	svc := NewService(api.NewClient("key", api.WithBaseURL(srv.URL)))

	result, ok := svc.Submit(context.Background(), "hi")
	if !ok || !result.IsSuccess() {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Reply() != "Hello" {
		t.Errorf("Reply() = %q, want Hello", result.Reply())
	}

	srv2, _ := endpoint(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  <b>spaced</b>\n\n"}]}}]}`)
	svc2 := NewService(api.NewClient("key", api.WithBaseURL(srv2.URL)))
	result, _ = svc2.Submit(context.Background(), "hi")
	if result.Reply() != "  <b>spaced</b>\n\n" {
		t.Errorf("Reply() = %q, want untouched text", result.Reply())
	}
}

func TestSubmit_PromptSentUntrimmed(t *testing.T) {
	mock := &api.MockGeminiClient{
		APIKeySet:          true,
		GenerateContentVal: &models.ModelOutput{Candidates: []models.Candidate{{Text: "ok"}}},
	}
	svc := NewService(mock)

	if _, ok := svc.Submit(context.Background(), "  why?  "); !ok {
		t.Fatal("expected a submission")
	}
	if mock.LastPrompt != "  why?  " {
		t.Errorf("LastPrompt = %q", mock.LastPrompt)
	}
}

func TestSubmit_ClientErrorsNeverEscape(t *testing.T) {
	mock := &api.MockGeminiClient{
		APIKeySet:          true,
		GenerateContentErr: errors.New("context deadline exceeded"),
	}
	svc := NewService(mock)

	result, ok := svc.Submit(context.Background(), "hello")
	if !ok {
		t.Fatal("expected a submission")
	}
	if result.Category() != apierrors.CategoryUnknown {
		t.Errorf("Category() = %v, want Unknown", result.Category())
	}
}

func TestSubmit_NilOutputIsUnknown(t *testing.T) {
	mock := &api.MockGeminiClient{APIKeySet: true}
	svc := NewService(mock)

	result, _ := svc.Submit(context.Background(), "hello")
	if result.IsSuccess() || result.Category() != apierrors.CategoryUnknown {
		t.Errorf("expected Unknown failure, got %+v", result)
	}
}

func TestHasCredential(t *testing.T) {
	if NewService(nil).HasCredential() {
		t.Error("nil client has no credential")
	}
	if NewService(&api.MockGeminiClient{}).HasCredential() {
		t.Error("expected no credential")
	}
	if !NewService(&api.MockGeminiClient{APIKeySet: true}).HasCredential() {
		t.Error("expected credential")
	}
}
