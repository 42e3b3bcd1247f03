package logging

import (
	"errors"
	"fmt"
	"strings"
)

func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429")
}

// InvariantError marks a logic bug inside the pipeline, as opposed to a
// provider or network failure. These must never be retried and should be
// logged loudly.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Detail)
}

func Invariant(format string, args ...interface{}) error {
	return &InvariantError{Detail: fmt.Sprintf(format, args...)}
}

func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
