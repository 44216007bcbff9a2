package translator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// BatchMismatchError reports that the translation service returned a
// different number of items than it was sent. Applying such a response
// would corrupt arbitrary cues, so it is fatal for the run.
type BatchMismatchError struct {
	BatchIndex int
	Want       int
	Got        int
}

func (e *BatchMismatchError) Error() string {
	return fmt.Sprintf("translation batch %d returned %d items, expected %d", e.BatchIndex, e.Got, e.Want)
}

// TransientError wraps a failure worth retrying: timeouts, rate limits,
// upstream 5xx responses.
type TransientError struct {
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient translation service error: %v", e.Cause)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// FatalError wraps a failure that aborts the whole run: auth failures,
// malformed requests, or a transient failure that exhausted its retries.
type FatalError struct {
	BatchIndex int
	Cause      error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("translation batch %d failed permanently: %v", e.BatchIndex, e.Cause)
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err is worth retrying
func IsTransient(err error) bool {
	var transient *TransientError
	if errors.As(err, &transient) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
