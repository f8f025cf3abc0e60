package x11

import (
	"errors"
	"fmt"
)

// ErrConnectionDied is reported when the connection with the X server
// closes while polling for events.
var ErrConnectionDied = errors.New("connection with X server closed")

var errInvalidLength = errors.New("invalid response length")

// InvalidDataError reports a client-message payload whose length is not
// exactly five words. The input is rejected and no message is produced.
type InvalidDataError struct {
	Len int
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid client message data: got %d words, want 5", e.Len)
}

// AtomError reports a failed atom resolution. The cause comes from the
// AtomQuerier unchanged; retrying is the caller's decision.
type AtomError struct {
	Name  string
	Cause error
}

func (e *AtomError) Error() string {
	return fmt.Sprintf("resolve atom %s: %s", e.Name, e.Cause)
}

func (e *AtomError) Unwrap() error {
	return e.Cause
}
