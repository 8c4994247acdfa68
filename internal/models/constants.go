// Package models contains data types and constants for copilotdesk.
package models

import "strings"

// Endpoints for the Gemini REST API
const (
	EndpointBase = "https://generativelanguage.googleapis.com/v1beta"
)

// Model identifies a generateContent model. The model is fixed by
// configuration and never selected by the end user.
type Model struct {
	Name string
}

// Available models
var (
	Model15Flash = Model{Name: "gemini-1.5-flash"}
	Model20Flash = Model{Name: "gemini-2.0-flash"}
	Model25Flash = Model{Name: "gemini-2.5-flash"}

	// DefaultModel is the model the inbox mockup shipped with
	DefaultModel = Model15Flash
)

// AllModels returns a list of all known models
func AllModels() []Model {
	return []Model{Model15Flash, Model20Flash, Model25Flash}
}

// ModelFromName returns a Model by its name. Unknown non-empty names are
// passed through so newer models work without a release.
func ModelFromName(name string) Model {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultModel
	}
	for _, m := range AllModels() {
		if m.Name == name {
			return m
		}
	}
	return Model{Name: name}
}

// GenerateURL builds the generateContent URL for base and model, without the key
func GenerateURL(base string, model Model) string {
	if base == "" {
		base = EndpointBase
	}
	return strings.TrimRight(base, "/") + "/models/" + model.Name + ":generateContent"
}

// DefaultHeaders returns the default headers for generateContent requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}
