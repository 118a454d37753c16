package webhook

import (
	"errors"
	"fmt"
)

// ErrTimeout means the endpoint did not settle within the deadline. The
// outcome is terminal: a reply arriving later is discarded, never surfaced.
var ErrTimeout = errors.New("webhook request timed out")

// RejectedError covers both transport failures and non-2xx responses.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("webhook rejected the request: status %d", e.Status)
	}
	return fmt.Sprintf("webhook request failed: %s", e.Body)
}
