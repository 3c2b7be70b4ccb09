package delegate

import (
	"errors"
	"fmt"
)

// ScoringUnavailableError indicates the remote scoring capability was
// unreachable, timed out, or returned an unusable response. No partial result
// is fabricated; the caller decides what to do.
type ScoringUnavailableError struct {
	Message string
	Cause   error
}

func (e *ScoringUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scoring unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("scoring unavailable: %s", e.Message)
}

func (e *ScoringUnavailableError) Unwrap() error {
	return e.Cause
}

// IsScoringUnavailable reports whether err is a ScoringUnavailableError.
func IsScoringUnavailable(err error) bool {
	var sue *ScoringUnavailableError
	return errors.As(err, &sue)
}
