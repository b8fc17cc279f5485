package interfaces

import "github.com/quickfixgo/quickfix"

// -----------------------------------------------------------------------------

// ISender hands a fully built message to the session engine. Implementations
// resolve the target comp ID to a live session.
type ISender interface {
	// Send delivers msg to the session identified by targetCompID.
	Send(msg *quickfix.Message, targetCompID string) error
}
