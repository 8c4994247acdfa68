// Package api provides the Gemini generateContent client implementation.
package api

// GJSON paths for extracting values from generateContent responses.
const (
	PathCandList     = "candidates"
	PathFirstCand    = "candidates.0"
	PathErrorMessage = "error.message"
	PathErrorStatus  = "error.status"

	// Candidate paths (relative to candidate object)
	PathCandText         = "content.parts.0.text"
	PathCandFinishReason = "finishReason"
)
