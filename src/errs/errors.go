package errs

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Error taxonomy. Decode failures are recovered per message, command
// validation failures return synchronously, delivery failures only cause an
// unsubscribe.
// -----------------------------------------------------------------------------

var (
	// ErrUnknownSession is returned when a command targets a comp ID that
	// never connected.
	ErrUnknownSession = errors.New("unknown session")

	// ErrDuplicateSession is returned on a second registration for the same
	// target comp ID.
	ErrDuplicateSession = errors.New("duplicate session")

	// ErrUnknownOrder is returned when a lookup names an order the ledger
	// has never seen.
	ErrUnknownOrder = errors.New("unknown order")

	// ErrNotConnected is returned when a command arrives for a session that
	// exists but is logged out.
	ErrNotConnected = errors.New("session not connected")
)

// -----------------------------------------------------------------------------

// MalformedMessageError marks an inbound message missing a required field.
type MalformedMessageError struct {
	MsgType string
	Tag     int
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("malformed %s message: required tag %d missing", e.MsgType, e.Tag)
}

// -----------------------------------------------------------------------------

// InvalidCommandError marks an outbound command rejected before encoding.
type InvalidCommandError struct {
	Reason string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command: %s", e.Reason)
}

// -----------------------------------------------------------------------------

// SendFailure wraps an engine error raised while handing a message to the
// session layer.
type SendFailure struct {
	Err error
}

func (e *SendFailure) Error() string {
	return fmt.Sprintf("send failed: %v", e.Err)
}

func (e *SendFailure) Unwrap() error {
	return e.Err
}
