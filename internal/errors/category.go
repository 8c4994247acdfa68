package errors

import (
	"errors"
	"net/http"
)

// Category classifies a failed completion for display.
// Exactly one category applies to each failure.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryMissingCredential
	CategoryBadRequest
	CategoryUnauthorized
	CategoryForbidden
	CategoryRateLimited
)

var categoryMessages = map[Category]string{
	CategoryMissingCredential: "Please add your Gemini API key",
	CategoryBadRequest:        "Invalid request. Please check your API key.",
	CategoryUnauthorized:      "API key is invalid or missing permissions.",
	CategoryForbidden:         "API key doesn't have permission to access the service.",
	CategoryRateLimited:       "Rate limit exceeded. Please try again later.",
	CategoryUnknown:           "Sorry, I encountered an error. Please try again.",
}

// Message returns the fixed user-facing message for the category
func (c Category) Message() string {
	if msg, ok := categoryMessages[c]; ok {
		return msg
	}
	return categoryMessages[CategoryUnknown]
}

func (c Category) String() string {
	switch c {
	case CategoryMissingCredential:
		return "MissingCredential"
	case CategoryBadRequest:
		return "BadRequest"
	case CategoryUnauthorized:
		return "Unauthorized"
	case CategoryForbidden:
		return "Forbidden"
	case CategoryRateLimited:
		return "RateLimited"
	default:
		return "Unknown"
	}
}

// CategoryFromStatus maps an HTTP status code to a Category.
func CategoryFromStatus(status int) Category {
	switch status {
	case http.StatusBadRequest:
		return CategoryBadRequest
	case http.StatusUnauthorized:
		return CategoryUnauthorized
	case http.StatusForbidden:
		return CategoryForbidden
	case http.StatusTooManyRequests:
		return CategoryRateLimited
	default:
		return CategoryUnknown
	}
}

// Classify maps any error returned by the API client to a Category.
// The real HTTP status wins; message text is never inspected.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	if errors.Is(err, ErrMissingCredential) {
		return CategoryMissingCredential
	}
	if status := GetHTTPStatus(err); status > 0 {
		return CategoryFromStatus(status)
	}
	return CategoryUnknown
}
