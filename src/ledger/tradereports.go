package ledger

import (
	"fmt"
	"sync"

	"fix-gateway/src/errs"
	"fix-gateway/src/models"
)

// -----------------------------------------------------------------------------
// TradeReportStore accumulates trade capture reports per TradeRequestID and
// flags the batch complete once a last-requested report has arrived.
// -----------------------------------------------------------------------------

type TradeReportStore struct {
	mu      sync.Mutex
	batches map[string]*models.MTradeBatch
}

// -----------------------------------------------------------------------------

// NewTradeReportStore creates an empty trade report store.
func NewTradeReportStore() *TradeReportStore {
	return &TradeReportStore{batches: map[string]*models.MTradeBatch{}}
}

// -----------------------------------------------------------------------------

// Merge records one trade capture report into its batch, creating the batch
// on first sight. Reports sharing a TradeReportID overwrite each other, so
// replays merge cleanly. The returned batch is complete once any report with
// lastRequested has been merged; completion is independent of arrival order.
func (s *TradeReportStore) Merge(tradeRequestID, tradeReportID string, totNum int, lastRequested bool, report *models.MTradeReport) *models.MTradeBatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[tradeRequestID]
	if !ok {
		batch = &models.MTradeBatch{
			TradeRequestID:     tradeRequestID,
			TotNumTradeReports: totNum,
			Reports:            map[string]*models.MTradeReport{},
		}
		s.batches[tradeRequestID] = batch
	}

	batch.Reports[tradeReportID] = report
	if lastRequested {
		batch.Complete = true
	}
	return batch
}

// -----------------------------------------------------------------------------

// Get returns the batch for a request ID.
func (s *TradeReportStore) Get(tradeRequestID string) (*models.MTradeBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[tradeRequestID]
	if !ok {
		return nil, fmt.Errorf("trade batch %s: %w", tradeRequestID, errs.ErrUnknownOrder)
	}
	return batch, nil
}
