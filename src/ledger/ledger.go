package ledger

import (
	"fmt"
	"sync"

	"fix-gateway/src/errs"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"
)

// -----------------------------------------------------------------------------
// Ledger keeps every order the gateway has seen, keyed by the exchange
// OrderID, with a per-session ClOrdID index for cancel/replace correlation.
// Orders are mutated in place and never deleted.
// -----------------------------------------------------------------------------

type Ledger struct {
	logger *logger.Logger

	mu      sync.RWMutex
	orders  map[string]*models.MOrder
	byClOrd map[string]map[string]string // targetCompID -> clOrdID -> orderID
}

// -----------------------------------------------------------------------------

// NewLedger creates an empty order ledger.
func NewLedger(logger *logger.Logger) *Ledger {
	return &Ledger{
		logger:  logger,
		orders:  map[string]*models.MOrder{},
		byClOrd: map[string]map[string]string{},
	}
}

// -----------------------------------------------------------------------------

// RecordAck stores the order snapshot from an execution report and indexes
// its ClOrdID. Re-acking an existing order overwrites the snapshot, so
// replays are idempotent.
func (l *Ledger) RecordAck(order *models.MOrder) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.orders[order.OrderID] = order
	l.index(order)
}

// -----------------------------------------------------------------------------

// RecordUpdate applies a later execution report to an existing order. An
// update for an OrderID the ledger never acked synthesizes the record from
// the update itself; exchanges may legitimately report orders entered
// through other channels.
func (l *Ledger) RecordUpdate(order *models.MOrder) *models.MOrder {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.orders[order.OrderID]
	if !ok {
		order.Synthesized = true
		l.orders[order.OrderID] = order
		l.index(order)
		l.logger.Warning("update for unknown order %s (clOrdId=%s), synthesizing record",
			order.OrderID, order.ClOrdID)
		return order
	}

	existing.ClOrdID = order.ClOrdID
	if order.OrigClOrdID != "" {
		existing.OrigClOrdID = order.OrigClOrdID
	}
	existing.Status = order.Status
	existing.ExecID = order.ExecID
	existing.TransactTime = order.TransactTime
	existing.Text = order.Text
	if order.Symbol != "" {
		existing.Symbol = order.Symbol
	}
	if order.Side != "" {
		existing.Side = order.Side
	}
	if order.OrdType != "" {
		existing.OrdType = order.OrdType
	}
	if order.Price != nil {
		existing.Price = order.Price
	}
	if order.AvgPx != nil {
		existing.AvgPx = order.AvgPx
	}
	if order.LastPx != nil {
		existing.LastPx = order.LastPx
	}
	if order.LastQty != nil {
		existing.LastQty = order.LastQty
	}
	if order.OrderQty != nil {
		existing.OrderQty = order.OrderQty
	}
	if order.LeavesQty != nil {
		existing.LeavesQty = order.LeavesQty
	}
	if order.CumQty != nil {
		existing.CumQty = order.CumQty
	}

	l.index(existing)
	return existing
}

// -----------------------------------------------------------------------------

// Lookup returns the order with the given exchange OrderID.
func (l *Ledger) Lookup(orderID string) (*models.MOrder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	o, ok := l.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("lookup %s: %w", orderID, errs.ErrUnknownOrder)
	}
	return o, nil
}

// LookupByClientOrderID resolves a session-scoped ClOrdID to its order.
func (l *Ledger) LookupByClientOrderID(targetCompID, clOrdID string) (*models.MOrder, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.byClOrd[targetCompID]
	if !ok {
		return nil, fmt.Errorf("lookup %s/%s: %w", targetCompID, clOrdID, errs.ErrUnknownOrder)
	}
	orderID, ok := idx[clOrdID]
	if !ok {
		return nil, fmt.Errorf("lookup %s/%s: %w", targetCompID, clOrdID, errs.ErrUnknownOrder)
	}
	return l.orders[orderID], nil
}

// -----------------------------------------------------------------------------

// Len returns the number of tracked orders.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// -----------------------------------------------------------------------------

// index must be called with the lock held.
func (l *Ledger) index(order *models.MOrder) {
	if order.ClOrdID == "" {
		return
	}
	idx, ok := l.byClOrd[order.TargetCompID]
	if !ok {
		idx = map[string]string{}
		l.byClOrd[order.TargetCompID] = idx
	}
	idx[order.ClOrdID] = order.OrderID
}
