package fixapp

import (
	"fix-gateway/src/interfaces"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"
	"fix-gateway/src/sessions"
	"fix-gateway/src/translator"

	"github.com/quickfixgo/quickfix"
)

// -----------------------------------------------------------------------------
// Application is the quickfix callback surface of the gateway. It keeps the
// session registry in sync with engine state, injects credentials on logon,
// and pushes every decoded application message to the publishers.
// -----------------------------------------------------------------------------

const (
	tagMsgType   = quickfix.Tag(35)
	tagUsername  = quickfix.Tag(553)
	tagPassword  = quickfix.Tag(554)
	tagTestReqID = quickfix.Tag(112)

	msgTypeLogon     = "A"
	msgTypeHeartbeat = "0"
	msgTypeReject    = "3"
)

type Application struct {
	name       string
	logger     *logger.Logger
	config     *models.MFIXConfig
	registry   *sessions.Registry
	translator *translator.Translator
	sender     *Sender
	publishers []interfaces.IPublisher
}

// -----------------------------------------------------------------------------

// NewApplication wires the callback surface. Publishers receive every decoded
// event in registration order.
func NewApplication(config *models.MFIXConfig, registry *sessions.Registry, trans *translator.Translator,
	sender *Sender, logger *logger.Logger, publishers ...interfaces.IPublisher) *Application {
	return &Application{
		name:       "fixapp",
		logger:     logger,
		config:     config,
		registry:   registry,
		translator: trans,
		sender:     sender,
		publishers: publishers,
	}
}

func (a *Application) publish(event *models.MEvent) {
	if event == nil {
		return
	}
	for _, publisher := range a.publishers {
		publisher.OnEvent(event)
	}
}

// -----------------------------------------------------------------------------
// Session lifecycle
// -----------------------------------------------------------------------------

func (a *Application) OnCreate(sessionID quickfix.SessionID) {
	a.sender.register(sessionID)
	if err := a.registry.Register(sessionID.TargetCompID, sessionID.SenderCompID); err != nil {
		// re-creation after a reset is normal, the registration stands
		a.logger.Debug("%s : session %s already registered", a.name, sessionID.TargetCompID)
		return
	}
	a.logger.Info("%s : session created %s -> %s", a.name, sessionID.SenderCompID, sessionID.TargetCompID)
}

func (a *Application) OnLogon(sessionID quickfix.SessionID) {
	if err := a.registry.SetConnected(sessionID.TargetCompID, true); err != nil {
		a.logger.Error("%s : logon for unknown session %s: %v", a.name, sessionID.TargetCompID, err)
		return
	}
	a.logger.Info("%s : logged on to %s", a.name, sessionID.TargetCompID)

	// probe the session right away; the heartbeat answer confirms both
	// directions are live
	msg := translator.EncodeTestRequest(sessionID.SenderCompID, sessionID.TargetCompID, "TEST")
	if err := a.sender.Send(msg, sessionID.TargetCompID); err != nil {
		a.logger.Warning("%s : test request to %s failed: %v", a.name, sessionID.TargetCompID, err)
	}
}

func (a *Application) OnLogout(sessionID quickfix.SessionID) {
	if err := a.registry.SetConnected(sessionID.TargetCompID, false); err != nil {
		a.logger.Error("%s : logout for unknown session %s: %v", a.name, sessionID.TargetCompID, err)
		return
	}
	a.logger.Warning("%s : logged out from %s", a.name, sessionID.TargetCompID)
}

// -----------------------------------------------------------------------------
// Outbound
// -----------------------------------------------------------------------------

// ToAdmin injects credentials into the logon message.
func (a *Application) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {
	msgType, err := msg.Header.GetString(tagMsgType)
	if err != nil {
		return
	}
	if msgType == msgTypeLogon {
		msg.Body.SetString(tagUsername, a.config.Account)
		msg.Body.SetString(tagPassword, a.config.Password)
	}
}

func (a *Application) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	a.logger.Debug("%s : sending to %s: %s", a.name, sessionID.TargetCompID, msg.String())
	return nil
}

// -----------------------------------------------------------------------------
// Inbound
// -----------------------------------------------------------------------------

// FromAdmin surfaces session-level rejects, which arrive on the admin path
// but matter to clients.
func (a *Application) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	msgType, err := msg.Header.GetString(tagMsgType)
	if err != nil {
		return err
	}

	switch msgType {
	case msgTypeHeartbeat:
		if msg.Body.Has(tagTestReqID) {
			a.logger.Debug("%s : heartbeat answer from %s", a.name, sessionID.TargetCompID)
		}
	case msgTypeReject:
		event, decodeErr := a.translator.DecodeSessionReject(msg, sessionID.SenderCompID)
		if decodeErr != nil {
			a.logger.Error("%s : failed to decode session reject from %s: %v", a.name, sessionID.TargetCompID, decodeErr)
			return nil
		}
		a.publish(event)
	}
	return nil
}

// FromApp decodes the message and fans the event out. Decode failures are
// logged and swallowed: rejecting back at the exchange would only produce
// more traffic for a message we already cannot use.
func (a *Application) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	event, err := a.translator.Decode(msg, sessionID.SenderCompID, sessionID.TargetCompID)
	if err != nil {
		a.logger.Error("%s : failed to decode message from %s: %v", a.name, sessionID.TargetCompID, err)
		return nil
	}
	a.publish(event)
	return nil
}
