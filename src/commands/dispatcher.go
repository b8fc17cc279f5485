package commands

import (
	"fmt"

	"fix-gateway/src/errs"
	"fix-gateway/src/interfaces"
	"fix-gateway/src/ledger"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"
	"fix-gateway/src/sessions"
	"fix-gateway/src/translator"
	"fix-gateway/src/utils"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Dispatcher turns client intents into outbound FIX messages. Validation
// happens here, before anything reaches the wire: unknown counterparty,
// disconnected session and malformed parameters all fail fast without
// consuming an ID from the sequence.
// -----------------------------------------------------------------------------

// Subscription request types shared by market data, security and status
// subscriptions.
const (
	SubscriptionSnapshot    = "0"
	SubscriptionSubscribe   = "1"
	SubscriptionUnsubscribe = "2"
)

type Dispatcher struct {
	name     string
	logger   *logger.Logger
	registry *sessions.Registry
	orders   *ledger.Ledger
	sender   interfaces.ISender
}

// -----------------------------------------------------------------------------

// NewDispatcher creates a dispatcher bound to a session registry and sender.
func NewDispatcher(registry *sessions.Registry, orders *ledger.Ledger, sender interfaces.ISender, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		name:     "dispatcher",
		logger:   logger,
		registry: registry,
		orders:   orders,
		sender:   sender,
	}
}

// -----------------------------------------------------------------------------

// ready resolves the gateway comp ID for a counterparty and confirms the
// session is logged on.
func (d *Dispatcher) ready(targetCompID string) (string, error) {
	senderCompID, err := d.registry.SenderCompID(targetCompID)
	if err != nil {
		return "", err
	}
	if !d.registry.Connected(targetCompID) {
		return "", errs.ErrNotConnected
	}
	return senderCompID, nil
}

// -----------------------------------------------------------------------------
// Order entry
// -----------------------------------------------------------------------------

// MOrderCommand carries the parameters of a new order. Side and OrdType use
// the gateway vocabulary ("Buy", "Limit", ...), not raw FIX codes.
type MOrderCommand struct {
	TargetCompID string   `json:"targetCompId"`
	Symbol       string   `json:"symbol"`
	Side         string   `json:"side"`
	OrdType      string   `json:"ordType"`
	Quantity     float64  `json:"quantity"`
	Price        *float64 `json:"price,omitempty"`
}

// PlaceOrder validates, mints a ClOrdID and sends a NewOrderSingle. The
// minted ClOrdID is returned so callers can correlate the acknowledgement.
func (d *Dispatcher) PlaceOrder(cmd *MOrderCommand) (string, error) {
	senderCompID, err := d.ready(cmd.TargetCompID)
	if err != nil {
		return "", err
	}
	if cmd.Symbol == "" {
		return "", &errs.InvalidCommandError{Reason: "symbol is required"}
	}
	sideCode, ok := translator.SideCode(cmd.Side)
	if !ok {
		return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("unknown side %q", cmd.Side)}
	}
	ordTypeCode, ok := translator.OrdTypeCode(cmd.OrdType)
	if !ok {
		return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("unknown order type %q", cmd.OrdType)}
	}
	if cmd.Quantity <= 0 || !utils.IsFinite(cmd.Quantity) {
		return "", &errs.InvalidCommandError{Reason: "quantity must be a positive finite number"}
	}
	if cmd.Price != nil && (*cmd.Price < 0 || !utils.IsFinite(*cmd.Price)) {
		return "", &errs.InvalidCommandError{Reason: "price must be a non-negative finite number"}
	}

	clOrdID := d.registry.NextClOrdID()
	msg := translator.EncodeNewOrderSingle(senderCompID, cmd.TargetCompID, d.registry.Account(),
		clOrdID, cmd.Symbol, sideCode, ordTypeCode, cmd.Quantity, cmd.Price)

	if err := d.sender.Send(msg, cmd.TargetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	d.logger.Info("%s : placed order %s %s %s x %s on %s", d.name,
		clOrdID, cmd.Side, cmd.Symbol, utils.FormatQty(cmd.Quantity), cmd.TargetCompID)
	return clOrdID, nil
}

// -----------------------------------------------------------------------------

// CancelOrder sends an OrderCancelRequest for a known exchange order ID. The
// symbol, side and open quantity come from the ledger.
func (d *Dispatcher) CancelOrder(targetCompID, orderID string) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}
	order, err := d.orders.Lookup(orderID)
	if err != nil {
		return "", err
	}
	sideCode, ok := translator.SideCode(order.Side)
	if !ok {
		return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("order %s has unknown side %q", orderID, order.Side)}
	}
	quantity := 0.0
	if order.OrderQty != nil {
		quantity = *order.OrderQty
	}

	clOrdID := d.registry.NextClOrdID()
	msg := translator.EncodeOrderCancelRequest(senderCompID, targetCompID, d.registry.Account(),
		clOrdID, orderID, order.Symbol, sideCode, quantity)

	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	d.logger.Info("%s : cancel %s requested as %s on %s", d.name, orderID, clOrdID, targetCompID)
	return clOrdID, nil
}

// -----------------------------------------------------------------------------

// ReplaceOrder sends an OrderCancelReplaceRequest amending quantity, price or
// both. Fields left nil are omitted from the wire so the exchange keeps the
// current values.
func (d *Dispatcher) ReplaceOrder(targetCompID, orderID string, quantity, price *float64) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}
	if quantity == nil && price == nil {
		return "", &errs.InvalidCommandError{Reason: "replace requires a new quantity, a new price, or both"}
	}
	if quantity != nil && (*quantity <= 0 || !utils.IsFinite(*quantity)) {
		return "", &errs.InvalidCommandError{Reason: "quantity must be a positive finite number"}
	}
	if price != nil && (*price < 0 || !utils.IsFinite(*price)) {
		return "", &errs.InvalidCommandError{Reason: "price must be a non-negative finite number"}
	}
	order, err := d.orders.Lookup(orderID)
	if err != nil {
		return "", err
	}
	sideCode, ok := translator.SideCode(order.Side)
	if !ok {
		return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("order %s has unknown side %q", orderID, order.Side)}
	}
	ordTypeCode, ok := translator.OrdTypeCode(order.OrdType)
	if !ok {
		return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("order %s has unknown type %q", orderID, order.OrdType)}
	}

	clOrdID := d.registry.NextClOrdID()
	msg := translator.EncodeOrderCancelReplace(senderCompID, targetCompID, d.registry.Account(),
		clOrdID, orderID, order.ClOrdID, order.Symbol, sideCode, ordTypeCode, quantity, price)

	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	d.logger.Info("%s : replace %s requested as %s on %s", d.name, orderID, clOrdID, targetCompID)
	return clOrdID, nil
}

// -----------------------------------------------------------------------------
// Order status
// -----------------------------------------------------------------------------

// OrderStatus requests the current state of a single order from the exchange.
func (d *Dispatcher) OrderStatus(targetCompID, orderID string) error {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return err
	}
	order, err := d.orders.Lookup(orderID)
	if err != nil {
		return err
	}
	sideCode, ok := translator.SideCode(order.Side)
	if !ok {
		return &errs.InvalidCommandError{Reason: fmt.Sprintf("order %s has unknown side %q", orderID, order.Side)}
	}

	msg := translator.EncodeOrderStatusRequest(senderCompID, targetCompID, orderID, order.Symbol, sideCode)
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return &errs.SendFailure{Err: err}
	}
	return nil
}

// MassStatus requests the status of every live order on the session. Returns
// the minted mass status request ID.
func (d *Dispatcher) MassStatus(targetCompID string) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}

	requestID := uuid.NewString()
	msg := translator.EncodeOrderMassStatusRequest(senderCompID, targetCompID, requestID, "")
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	d.logger.Info("%s : mass status %s requested on %s", d.name, requestID, targetCompID)
	return requestID, nil
}

// MassCancel asks the exchange to cancel every live order on the session.
func (d *Dispatcher) MassCancel(targetCompID, marketSegmentID string) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}

	clOrdID := d.registry.NextClOrdID()
	msg := translator.EncodeOrderMassCancelRequest(senderCompID, targetCompID, clOrdID, marketSegmentID)
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	d.logger.Info("%s : mass cancel %s requested on %s", d.name, clOrdID, targetCompID)
	return clOrdID, nil
}

// -----------------------------------------------------------------------------
// Market data
// -----------------------------------------------------------------------------

// MMarketDataCommand parametrizes a market data subscription.
type MMarketDataCommand struct {
	TargetCompID string   `json:"targetCompId"`
	Symbols      []string `json:"symbols"`
	Entries      []string `json:"entries"`
	Depth        int      `json:"depth"`
	Subscription string   `json:"subscription"`
}

// SubscribeMarketData validates entry codes and sends a MarketDataRequest.
// Returns the minted MDReqID.
func (d *Dispatcher) SubscribeMarketData(cmd *MMarketDataCommand) (string, error) {
	senderCompID, err := d.ready(cmd.TargetCompID)
	if err != nil {
		return "", err
	}
	if len(cmd.Symbols) == 0 {
		return "", &errs.InvalidCommandError{Reason: "at least one symbol is required"}
	}
	if len(cmd.Entries) == 0 {
		return "", &errs.InvalidCommandError{Reason: "at least one entry type is required"}
	}
	for _, entry := range cmd.Entries {
		if !translator.ValidMDEntryCode(entry) {
			return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("unknown market data entry type %q", entry)}
		}
	}
	if err := validSubscription(cmd.Subscription); err != nil {
		return "", err
	}
	if cmd.Depth < 0 {
		return "", &errs.InvalidCommandError{Reason: "depth must be zero (full book) or positive"}
	}

	requestID := uuid.NewString()
	msg := translator.EncodeMarketDataRequest(senderCompID, cmd.TargetCompID, requestID,
		cmd.Entries, cmd.Symbols, cmd.Subscription, cmd.Depth)
	if err := d.sender.Send(msg, cmd.TargetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	d.logger.Info("%s : market data request %s for %d symbols on %s", d.name,
		requestID, len(cmd.Symbols), cmd.TargetCompID)
	return requestID, nil
}

// -----------------------------------------------------------------------------
// Reference data
// -----------------------------------------------------------------------------

// SecurityList requests the instrument catalog. The criteria determines which
// selector must be set: a symbol, a CFI code, or nothing for the full list.
func (d *Dispatcher) SecurityList(targetCompID, criteria, symbol, cfiCode, subscription string) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}
	switch criteria {
	case translator.SecurityListBySymbol:
		if symbol == "" {
			return "", &errs.InvalidCommandError{Reason: "symbol criteria requires a symbol"}
		}
	case translator.SecurityListByCFICode:
		if cfiCode == "" {
			return "", &errs.InvalidCommandError{Reason: "cfi code criteria requires a cfi code"}
		}
	case translator.SecurityListByProduct, translator.SecurityListAll:
	default:
		return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("unknown security list criteria %q", criteria)}
	}
	if err := validSubscription(subscription); err != nil {
		return "", err
	}

	requestID := uuid.NewString()
	msg := translator.EncodeSecurityListRequest(senderCompID, targetCompID, requestID,
		criteria, symbol, cfiCode, subscription)
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	return requestID, nil
}

// SecurityStatus subscribes to trading halt and resume notices for a symbol.
func (d *Dispatcher) SecurityStatus(targetCompID, symbol, subscription string) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}
	if symbol == "" {
		return "", &errs.InvalidCommandError{Reason: "symbol is required"}
	}
	if err := validSubscription(subscription); err != nil {
		return "", err
	}

	requestID := uuid.NewString()
	msg := translator.EncodeSecurityStatusRequest(senderCompID, targetCompID, requestID, symbol, subscription)
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	return requestID, nil
}

// -----------------------------------------------------------------------------
// Trades and allocations
// -----------------------------------------------------------------------------

// TradeCapture requests executed trades. With a symbol it filters by
// instrument; without one it asks for all trades of the configured account.
func (d *Dispatcher) TradeCapture(targetCompID, symbol string) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}

	requestID := uuid.NewString()
	msg := translator.EncodeTradeCaptureReportRequest(senderCompID, targetCompID, requestID,
		d.registry.Account(), symbol)
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	d.logger.Info("%s : trade capture request %s on %s", d.name, requestID, targetCompID)
	return requestID, nil
}

// Allocation sends a new calculated AllocationInstruction for a trade.
func (d *Dispatcher) Allocation(targetCompID, symbol, side, tradeDate string, quantity float64) (string, error) {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return "", err
	}
	if symbol == "" {
		return "", &errs.InvalidCommandError{Reason: "symbol is required"}
	}
	sideCode, ok := translator.SideCode(side)
	if !ok {
		return "", &errs.InvalidCommandError{Reason: fmt.Sprintf("unknown side %q", side)}
	}
	if quantity <= 0 || !utils.IsFinite(quantity) {
		return "", &errs.InvalidCommandError{Reason: "quantity must be a positive finite number"}
	}

	allocID := uuid.NewString()
	msg := translator.EncodeAllocationInstruction(senderCompID, targetCompID, allocID,
		symbol, sideCode, tradeDate, quantity)
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return "", &errs.SendFailure{Err: err}
	}
	return allocID, nil
}

// -----------------------------------------------------------------------------

// TestRequest forces a heartbeat exchange on the session.
func (d *Dispatcher) TestRequest(targetCompID, testReqID string) error {
	senderCompID, err := d.ready(targetCompID)
	if err != nil {
		return err
	}
	msg := translator.EncodeTestRequest(senderCompID, targetCompID, testReqID)
	if err := d.sender.Send(msg, targetCompID); err != nil {
		return &errs.SendFailure{Err: err}
	}
	return nil
}

// -----------------------------------------------------------------------------

// Lookup exposes the order ledger for read-only queries.
func (d *Dispatcher) Lookup(orderID string) (*models.MOrder, error) {
	return d.orders.Lookup(orderID)
}

// LookupByClientOrderID resolves a client order ID on a given session.
func (d *Dispatcher) LookupByClientOrderID(targetCompID, clOrdID string) (*models.MOrder, error) {
	return d.orders.LookupByClientOrderID(targetCompID, clOrdID)
}

// -----------------------------------------------------------------------------

func validSubscription(subscription string) error {
	switch subscription {
	case SubscriptionSnapshot, SubscriptionSubscribe, SubscriptionUnsubscribe:
		return nil
	}
	return &errs.InvalidCommandError{Reason: fmt.Sprintf("unknown subscription request type %q", subscription)}
}
