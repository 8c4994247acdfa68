package models

// Part is one content fragment of a request or candidate
type Part struct {
	Text string `json:"text"`
}

// Content is an ordered list of parts
type Content struct {
	Parts []Part `json:"parts"`
}

// GenerateRequest is the generateContent request body
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// NewGenerateRequest wraps prompt as the sole content fragment
func NewGenerateRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}
}

// Candidate represents a single generated completion
type Candidate struct {
	Text         string
	FinishReason string
}

// ModelOutput represents a successful generateContent response
type ModelOutput struct {
	Candidates []Candidate
	Model      string
}

// Text returns the first candidate's text
func (m *ModelOutput) Text() string {
	if m == nil || len(m.Candidates) == 0 {
		return ""
	}
	return m.Candidates[0].Text
}
