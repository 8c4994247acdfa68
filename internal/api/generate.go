package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/copilotdesk/internal/errors"
	"github.com/diogo/copilotdesk/internal/models"
)

const (
	// maxErrorBody bounds how much of a failed response is kept for diagnostics
	maxErrorBody = 4096
	// maxResponseBody bounds a successful response
	maxResponseBody = 8 << 20
)

// GenerateContent sends prompt as a single content fragment and returns the
// parsed candidates. It makes exactly one attempt.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	apiKey := c.getAPIKey()
	if apiKey == "" {
		return nil, apierrors.ErrMissingCredential
	}

	endpoint := c.Endpoint()
	model := c.GetModel()

	payload, err := buildPayload(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+url.Values{"key": {apiKey}}.Encode(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("model", model.Name).
		Int("prompt_bytes", len(prompt)).
		Msg("sending generateContent request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(redactError(err, apiKey)).Str("endpoint", endpoint).Msg("generateContent transport failure")
		return nil, apierrors.NewNetworkError("generate content", endpoint, redactError(err, apiKey))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := errorMessage(errorBody, resp.StatusCode)
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("message", message).
			Dur("elapsed", time.Since(start)).
			Msg("generateContent rejected")
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, message, string(errorBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, apierrors.NewNetworkError("read response", endpoint, redactError(err, apiKey))
	}

	output, err := parseResponse(body, model.Name)
	if err != nil {
		c.logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("generateContent unusable response")
		return nil, err
	}

	c.logger.Debug().
		Int("candidates", len(output.Candidates)).
		Dur("elapsed", time.Since(start)).
		Msg("generateContent succeeded")

	return output, nil
}

// buildPayload creates the JSON body: {contents:[{parts:[{text:prompt}]}]}
func buildPayload(prompt string) ([]byte, error) {
	return json.Marshal(models.NewGenerateRequest(prompt))
}

// errorMessage picks the endpoint's own message, falling back to the status
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, PathErrorMessage).String(); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// parseResponse extracts candidates from a 2xx generateContent body
func parseResponse(body []byte, modelName string) (*models.ModelOutput, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("no valid JSON found in response", "")
	}

	parsed := gjson.ParseBytes(body)

	candidateList := parsed.Get(PathCandList)
	if !candidateList.IsArray() || !parsed.Get(PathFirstCand).Exists() {
		if msg := parsed.Get(PathErrorMessage).String(); msg != "" {
			return nil, fmt.Errorf("%w: %s", apierrors.ErrNoContent, msg)
		}
		return nil, apierrors.ErrNoContent
	}

	var candidates []models.Candidate
	candidateList.ForEach(func(_, candValue gjson.Result) bool {
		text := candValue.Get(PathCandText)
		candidates = append(candidates, models.Candidate{
			Text:         text.String(),
			FinishReason: candValue.Get(PathCandFinishReason).String(),
		})
		return true
	})

	// Only the first candidate is ever displayed, so it alone decides usability.
	if first := parsed.Get(PathFirstCand).Get(PathCandText); first.Type != gjson.String {
		return nil, fmt.Errorf("%w: first candidate has no text", apierrors.ErrNoContent)
	}

	return &models.ModelOutput{
		Candidates: candidates,
		Model:      modelName,
	}, nil
}

// redactError strips the credential from transport errors, which embed the URL
func redactError(err error, apiKey string) error {
	if err == nil || apiKey == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, apiKey) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(msg, apiKey, "HIDDEN_KEY"))
}
