package recommend

import (
	"errors"
	"fmt"
)

// ValidationError reports an answer set that violates the input contract,
// such as a question index or option that is not an integer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ExplanationError reports a failure of the explanation generator.
// It is a service failure, never a client input problem.
type ExplanationError struct {
	Stream Stream
	Err    error
}

func (e *ExplanationError) Error() string {
	return fmt.Sprintf("failed to generate explanation for %q: %v", e.Stream, e.Err)
}

func (e *ExplanationError) Unwrap() error {
	return e.Err
}

// ErrExplainerUnavailable is returned while the circuit breaker around the
// explanation generator is open.
var ErrExplainerUnavailable = errors.New("explanation service temporarily unavailable")

// ErrEmptyExplanation is returned when the generator answers with blank text.
var ErrEmptyExplanation = errors.New("explanation generator returned empty text")
