package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSessionActive is returned by Begin when a session with the same id
// exists and has not finished.
var ErrSessionActive = errors.New("session already exists and is not done")

// ErrNotAwaitingInput is returned by SubmitAnswer when the session is not
// paused for a human answer.
var ErrNotAwaitingInput = errors.New("session is not awaiting input")

// ErrExtractionFailed marks extractor timeouts and unparsable output. The
// session is left in its pre-call state, so a caller-level retry is safe.
var ErrExtractionFailed = errors.New("extraction failed")

// extractionError carries the extractor's cause alongside the sentinel:
// errors.Is matches both ErrExtractionFailed and anything in the cause
// chain (context.DeadlineExceeded, a wrapped HTTP error).
type extractionError struct {
	sessionID string
	cause     error
}

func (e *extractionError) Error() (msg string) {
	msg = fmt.Sprintf("extraction failed for session %s: %v", e.sessionID, e.cause)
	return msg
}

func (e *extractionError) Unwrap() (err error) {
	err = e.cause
	return err
}

func (e *extractionError) Is(target error) (match bool) {
	match = target == ErrExtractionFailed
	return match
}
