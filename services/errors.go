package services

import "fmt"

// ErrQuestionNotFound is returned when a question id has no matching record.
var ErrQuestionNotFound = fmt.Errorf("question not found")

// RateLimitError rejects a submission that went over one of the two windows.
// It is a distinct kind so handlers can answer 429 instead of a generic 500.
type RateLimitError struct {
	Reason string
}

func (e *RateLimitError) Error() string {
	return e.Reason
}
