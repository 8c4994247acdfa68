package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/diogo/copilotdesk/internal/models"
)

// GeminiClientInterface is the subset of the client the copilot depends on
type GeminiClientInterface interface {
	GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error)
	HasAPIKey() bool
	GetModel() models.Model
}

// GeminiClient talks to the Gemini generateContent REST endpoint
type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      models.Model
	logger     zerolog.Logger
	mu         sync.RWMutex
}

var _ GeminiClientInterface = (*GeminiClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*GeminiClient)

// WithModel sets the model used for every request
func WithModel(model models.Model) ClientOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// WithBaseURL overrides the API base URL (used by tests and proxies)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *GeminiClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *GeminiClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the transport timeout. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *GeminiClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *GeminiClient) {
		c.logger = logger
	}
}

// NewClient creates a new GeminiClient. An empty apiKey is allowed; requests
// then fail with ErrMissingCredential before touching the network.
func NewClient(apiKey string, opts ...ClientOption) *GeminiClient {
	client := &GeminiClient{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    models.EndpointBase,
		model:      models.DefaultModel,
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// HasAPIKey reports whether a credential is configured
func (c *GeminiClient) HasAPIKey() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey != ""
}

// SetAPIKey replaces the credential
func (c *GeminiClient) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
}

func (c *GeminiClient) getAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// GetModel returns the configured model
func (c *GeminiClient) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// Endpoint returns the generateContent URL without the credential
func (c *GeminiClient) Endpoint() string {
	return models.GenerateURL(c.baseURL, c.GetModel())
}
