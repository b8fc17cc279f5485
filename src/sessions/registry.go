package sessions

import (
	"fmt"
	"sync"

	"fix-gateway/src/errs"
	"fix-gateway/src/logger"
)

// -----------------------------------------------------------------------------
// Registry tracks every FIX session the engine has created, its logon state
// and the per-session ID counters. Counters only ever move forward; a send
// that later fails does not give its ID back.
// -----------------------------------------------------------------------------

type session struct {
	senderCompID string
	targetCompID string
	connected    bool

	execID uint64
	exchID uint64
}

type Registry struct {
	logger  *logger.Logger
	account string

	mu          sync.Mutex
	sessions    map[string]*session
	lastOrderID uint64
}

// -----------------------------------------------------------------------------

// NewRegistry creates an empty registry. Client order IDs are minted under
// the given account.
func NewRegistry(account string, logger *logger.Logger) *Registry {
	return &Registry{
		logger:   logger,
		account:  account,
		sessions: map[string]*session{},
	}
}

// -----------------------------------------------------------------------------

// Register records a newly created session, disconnected with zeroed
// counters. Registering the same target twice is an error.
func (r *Registry) Register(targetCompID, senderCompID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[targetCompID]; ok {
		return fmt.Errorf("register %s: %w", targetCompID, errs.ErrDuplicateSession)
	}

	r.sessions[targetCompID] = &session{
		senderCompID: senderCompID,
		targetCompID: targetCompID,
	}
	r.logger.Info("session registered >> target=%s sender=%s", targetCompID, senderCompID)
	return nil
}

// -----------------------------------------------------------------------------

// SetConnected flips the logon state for a target.
func (r *Registry) SetConnected(targetCompID string, connected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[targetCompID]
	if !ok {
		return fmt.Errorf("set connected %s: %w", targetCompID, errs.ErrUnknownSession)
	}
	s.connected = connected
	return nil
}

// Connected reports whether the target is registered and logged on.
func (r *Registry) Connected(targetCompID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[targetCompID]
	return ok && s.connected
}

// -----------------------------------------------------------------------------

// SenderCompID returns the sender comp ID the session was created with.
func (r *Registry) SenderCompID(targetCompID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[targetCompID]
	if !ok {
		return "", fmt.Errorf("sender comp id %s: %w", targetCompID, errs.ErrUnknownSession)
	}
	return s.senderCompID, nil
}

// -----------------------------------------------------------------------------

// NextClOrdID mints the next client order ID, {account}-{8 digit counter}.
// The counter is shared across sessions, matching the exchange requirement
// that ClOrdIDs be unique per trading day.
func (r *Registry) NextClOrdID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastOrderID++
	return fmt.Sprintf("%s-%08d", r.account, r.lastOrderID)
}

// -----------------------------------------------------------------------------

// NextExecID mints the next execution ID for a target, {target}_{n}.
func (r *Registry) NextExecID(targetCompID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[targetCompID]
	if !ok {
		return "", fmt.Errorf("next exec id %s: %w", targetCompID, errs.ErrUnknownSession)
	}
	s.execID++
	return fmt.Sprintf("%s_%d", targetCompID, s.execID), nil
}

// NextExchangeID mints the next exchange ID for a target, {target}_{n}. The
// counter is independent from the exec ID counter.
func (r *Registry) NextExchangeID(targetCompID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[targetCompID]
	if !ok {
		return "", fmt.Errorf("next exchange id %s: %w", targetCompID, errs.ErrUnknownSession)
	}
	s.exchID++
	return fmt.Sprintf("%s_%d", targetCompID, s.exchID), nil
}

// -----------------------------------------------------------------------------

// Account returns the trading account IDs are minted under.
func (r *Registry) Account() string {
	return r.account
}

// Targets returns the registered target comp IDs.
func (r *Registry) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets := make([]string, 0, len(r.sessions))
	for t := range r.sessions {
		targets = append(targets, t)
	}
	return targets
}
