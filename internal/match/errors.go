package match

import "fmt"

// UnknownModelError indicates the caller asked for a scoring path that is not
// available. The model choice is an explicit enum input; it is never coerced
// to a default.
type UnknownModelError struct {
	Choice string
	Reason string
}

func (e *UnknownModelError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("model choice %q unavailable: %s", e.Choice, e.Reason)
	}
	return fmt.Sprintf("unknown model choice %q", e.Choice)
}
