package fixapp

import (
	"sync"

	"fix-gateway/src/errs"

	"github.com/quickfixgo/quickfix"
)

// -----------------------------------------------------------------------------
// Sender routes outbound messages to the engine session serving a given
// counterparty. Sessions announce themselves through OnCreate, so the map is
// complete before the first logon.
// -----------------------------------------------------------------------------

type Sender struct {
	mu       sync.RWMutex
	sessions map[string]quickfix.SessionID
}

func NewSender() *Sender {
	return &Sender{sessions: map[string]quickfix.SessionID{}}
}

func (s *Sender) register(sessionID quickfix.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID.TargetCompID] = sessionID
}

// Send delivers a message on the session for targetCompID.
func (s *Sender) Send(msg *quickfix.Message, targetCompID string) error {
	s.mu.RLock()
	sessionID, ok := s.sessions[targetCompID]
	s.mu.RUnlock()
	if !ok {
		return errs.ErrUnknownSession
	}
	return quickfix.SendToTarget(msg, sessionID)
}
