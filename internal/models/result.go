package models

import apierrors "github.com/diogo/copilotdesk/internal/errors"

// Result is the outcome of one copilot query: a Success or a Failure, never both.
type Result struct {
	success  bool
	text     string
	category apierrors.Category
	message  string
}

// Success builds a successful Result carrying the reply verbatim
func Success(text string) Result {
	return Result{success: true, text: text}
}

// Failure builds a failed Result with the category's fixed message
func Failure(category apierrors.Category) Result {
	return Result{category: category, message: category.Message()}
}

// IsSuccess reports whether the Result is a Success
func (r Result) IsSuccess() bool {
	return r.success
}

// Reply returns the success text; empty for failures
func (r Result) Reply() string {
	if !r.success {
		return ""
	}
	return r.text
}

// Category returns the failure category. Only meaningful for failures.
func (r Result) Category() apierrors.Category {
	return r.category
}

// Message returns the failure's user-facing message; empty for successes
func (r Result) Message() string {
	if r.success {
		return ""
	}
	return r.message
}

// Text returns what the assistant bubble should display
func (r Result) Text() string {
	if r.success {
		return r.text
	}
	return r.message
}
