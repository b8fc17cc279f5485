package translator

import (
	"testing"

	"fix-gateway/src/errs"
	"fix-gateway/src/ledger"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"

	"github.com/quickfixgo/quickfix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func newTestTranslator() (*Translator, *ledger.Ledger) {
	orders := ledger.NewLedger(logger.NewNopLogger())
	trans := NewTranslator("REM2989", orders, ledger.NewTradeReportStore(), logger.NewNopLogger())
	return trans, orders
}

func fixMessage(msgType string, fields map[quickfix.Tag]string) *quickfix.Message {
	msg := quickfix.NewMessage()
	msg.Header.SetString(tagMsgType, msgType)
	for tag, value := range fields {
		msg.Body.SetString(tag, value)
	}
	return msg
}

func execReport(execType string, fields map[quickfix.Tag]string) *quickfix.Message {
	msg := fixMessage(MsgTypeExecutionReport, fields)
	msg.Body.SetString(tagExecType, execType)
	return msg
}

// -----------------------------------------------------------------------------
// Execution reports
// -----------------------------------------------------------------------------

func TestDecodeOrderAck(t *testing.T) {
	trans, orders := newTestTranslator()

	msg := execReport("0", map[quickfix.Tag]string{
		tagClOrdID:   "REM2989-00000001",
		tagOrderID:   "ROFX_100",
		tagOrdStatus: "0",
		tagSymbol:    "RFX20Dic19",
		tagSide:      "1",
		tagOrdType:   "2",
		tagOrderQty:  "10",
		tagLeavesQty: "10",
		tagCumQty:    "0",
		tagPrice:     "57400",
		tagExecID:    "ROFX_1",
	})

	event, err := trans.Decode(msg, "FIXSERVER", "ROFX")
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, models.EventOrderReport, event.Type)
	// the envelope carries our own comp ID, not the counterparty's
	assert.Equal(t, "FIXSERVER", event.SenderCompID)

	report := event.OrderReport
	require.NotNil(t, report)
	assert.Equal(t, "NEW", report.Status)
	assert.Equal(t, "Buy", report.Side)
	assert.Equal(t, "Limit", report.OrdType)
	assert.Equal(t, "REM2989", report.AccountID.ID)
	assert.Equal(t, "RFX20Dic19", report.InstrumentID.Symbol)
	// acknowledgements carry no fill fields
	assert.Nil(t, report.AvgPx)
	assert.Nil(t, report.LastPx)
	assert.Nil(t, report.OrigClOrdID)

	order, err := orders.Lookup("ROFX_100")
	require.NoError(t, err)
	assert.Equal(t, "NEW", order.Status)
	// ledger correlation stays keyed by the counterparty
	assert.Equal(t, "ROFX", order.TargetCompID)
}

func TestDecodeTradeMergesIntoLedger(t *testing.T) {
	trans, orders := newTestTranslator()

	ack := execReport("0", map[quickfix.Tag]string{
		tagClOrdID: "REM2989-00000001", tagOrderID: "ROFX_100", tagOrdStatus: "0",
		tagSymbol: "RFX20Dic19", tagSide: "1", tagOrdType: "2",
		tagOrderQty: "10", tagLeavesQty: "10", tagCumQty: "0", tagPrice: "57400",
	})
	_, err := trans.Decode(ack, "ROFX", "ROFX")
	require.NoError(t, err)

	fill := execReport("F", map[quickfix.Tag]string{
		tagClOrdID: "REM2989-00000001", tagOrderID: "ROFX_100", tagOrdStatus: "1",
		tagLeavesQty: "6", tagCumQty: "4", tagLastQty: "4", tagLastPx: "57395", tagAvgPx: "57395",
	})
	event, err := trans.Decode(fill, "ROFX", "ROFX")
	require.NoError(t, err)
	require.NotNil(t, event)

	report := event.OrderReport
	require.NotNil(t, report)
	assert.Equal(t, "PARTIALLY FILLED", report.Status)
	// merged from the acknowledgement
	assert.Equal(t, "RFX20Dic19", report.InstrumentID.Symbol)
	require.NotNil(t, report.OrderQty)
	assert.InDelta(t, 10, *report.OrderQty, 1e-9)
	// carried by the fill
	require.NotNil(t, report.LastPx)
	assert.InDelta(t, 57395, *report.LastPx, 1e-9)
	require.NotNil(t, report.CumQty)
	require.NotNil(t, report.LeavesQty)
	assert.InDelta(t, *report.OrderQty, *report.CumQty+*report.LeavesQty, 1e-9)

	order, err := orders.Lookup("ROFX_100")
	require.NoError(t, err)
	assert.Equal(t, "PARTIALLY FILLED", order.Status)
}

func TestDecodeReplacedReindexesClOrdID(t *testing.T) {
	trans, orders := newTestTranslator()

	ack := execReport("0", map[quickfix.Tag]string{
		tagClOrdID: "REM2989-00000001", tagOrderID: "ROFX_100", tagOrdStatus: "0",
		tagSymbol: "RFX20Dic19", tagSide: "1", tagOrdType: "2", tagOrderQty: "10", tagPrice: "57400",
	})
	_, err := trans.Decode(ack, "ROFX", "ROFX")
	require.NoError(t, err)

	replaced := execReport("5", map[quickfix.Tag]string{
		tagClOrdID: "REM2989-00000002", tagOrigClOrdID: "REM2989-00000001",
		tagOrderID: "ROFX_100", tagOrdStatus: "0", tagPrice: "57500",
	})
	event, err := trans.Decode(replaced, "ROFX", "ROFX")
	require.NoError(t, err)

	require.NotNil(t, event.OrderReport.OrigClOrdID)
	assert.Equal(t, "REM2989-00000001", *event.OrderReport.OrigClOrdID)

	order, err := orders.LookupByClientOrderID("ROFX", "REM2989-00000002")
	require.NoError(t, err)
	require.NotNil(t, order.Price)
	assert.InDelta(t, 57500, *order.Price, 1e-9)
}

func TestDecodeRejectLeavesLedgerAlone(t *testing.T) {
	trans, orders := newTestTranslator()

	msg := execReport("8", map[quickfix.Tag]string{
		tagClOrdID: "REM2989-00000001", tagOrderID: "NONE", tagOrdStatus: "8",
		tagText: "Invalid instrument",
	})
	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)

	assert.Equal(t, "REJECTED", event.OrderReport.Status)
	assert.Equal(t, "Invalid instrument", event.OrderReport.Text)
	assert.Equal(t, 0, orders.Len())
}

func TestDecodeUnknownStatusPassesThrough(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := execReport("0", map[quickfix.Tag]string{
		tagClOrdID: "REM2989-00000001", tagOrderID: "ROFX_100", tagOrdStatus: "7",
	})
	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN (7)", event.OrderReport.Status)
}

func TestDecodeAckWithoutClOrdIDFails(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := execReport("0", map[quickfix.Tag]string{tagOrderID: "ROFX_100", tagOrdStatus: "0"})
	_, err := trans.Decode(msg, "ROFX", "ROFX")

	var malformed *errs.MalformedMessageError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, int(tagClOrdID), malformed.Tag)
}

// -----------------------------------------------------------------------------
// Order status shapes
// -----------------------------------------------------------------------------

func TestDecodeOrderStatusMassShape(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := execReport("I", map[quickfix.Tag]string{
		tagTotNumReports:    "2",
		tagMassStatusReqID:  "req-1",
		tagOrderID:          "ROFX_100",
		tagOrdStatus:        "0",
		tagClOrdID:          "REM2989-00000001",
		tagSymbol:           "RFX20Dic19",
		tagSide:             "1",
		tagOrderQty:         "10",
		tagLeavesQty:        "10",
		tagCumQty:           "0",
		tagLastRptRequested: "N",
	})

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)
	assert.Equal(t, models.EventOrderStatus, event.Type)

	report := event.StatusReport
	require.NotNil(t, report)
	require.NotNil(t, report.TotNumReports)
	assert.Equal(t, 2, *report.TotNumReports)
	assert.Equal(t, "req-1", report.MassStatusReqID)
	assert.Equal(t, "REM2989-00000001", report.ClOrdID)
}

func TestDecodeOrderStatusEmptyMassResult(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := execReport("I", map[quickfix.Tag]string{
		tagTotNumReports:    "0",
		tagMassStatusReqID:  "req-2",
		tagOrdStatus:        "8",
		tagLastRptRequested: "Y",
		tagText:             "NO ORDERS",
	})

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)

	report := event.StatusReport
	require.NotNil(t, report.TotNumReports)
	assert.Equal(t, 0, *report.TotNumReports)
	// no per-order detail when nothing matched
	assert.Empty(t, report.ClOrdID)
	assert.Nil(t, report.OrderQty)
}

func TestDecodeOrderStatusSingleShape(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := execReport("I", map[quickfix.Tag]string{
		tagOrderID:          "ROFX_100",
		tagOrdStatus:        "1",
		tagClOrdID:          "REM2989-00000001",
		tagSymbol:           "RFX20Dic19",
		tagSecurityExchange: "ROFX",
		tagSide:             "1",
		tagOrderQty:         "10",
	})

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)

	report := event.StatusReport
	assert.Nil(t, report.TotNumReports)
	assert.Equal(t, "ROFX", report.SecurityExchange)
	assert.Equal(t, "PARTIALLY FILLED", report.OrdStatus)
	require.NotNil(t, report.OrderQty)
}

// -----------------------------------------------------------------------------
// Rejects and session status
// -----------------------------------------------------------------------------

func TestDecodeOrderCancelReject(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := fixMessage(MsgTypeOrderCancelReject, map[quickfix.Tag]string{
		tagClOrdID:          "REM2989-00000002",
		tagOrigClOrdID:      "REM2989-00000001",
		tagOrderID:          "ROFX_100",
		tagOrdStatus:        "4",
		tagCxlRejResponseTo: "1",
		tagCxlRejReason:     "0",
	})

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)

	assert.Equal(t, models.EventCancelReject, event.Type)
	assert.Equal(t, "CANCELLED", event.Details["ordStatus"])
	assert.Equal(t, "Too late to Cancel", event.Details["cxlRejReason"])
}

func TestDecodeTradingSessionStatus(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := fixMessage(MsgTypeTradingSessionStatus, map[quickfix.Tag]string{
		tagTradSesStatus:       "2",
		tagTradingSessionID:    "1",
		tagTradingSessionSubID: "1",
	})

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)
	assert.Equal(t, models.EventTradingSession, event.Type)
	assert.Equal(t, "Open", event.Details["tradSesStatus"])
}

func TestDecodeSessionReject(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := fixMessage(MsgTypeReject, map[quickfix.Tag]string{
		tagRefSeqNum:           "42",
		tagSessionRejectReason: "1",
		tagText:                "Required tag missing",
	})

	event, err := trans.DecodeSessionReject(msg, "ROFX")
	require.NoError(t, err)
	assert.Equal(t, models.EventSessionReject, event.Type)
	assert.Equal(t, "Required Tag Missing", event.Details["sessionRejectReason"])
}

func TestDecodeIgnoresUnknownMessageType(t *testing.T) {
	trans, _ := newTestTranslator()

	event, err := trans.Decode(fixMessage("ZZ", nil), "ROFX", "ROFX")
	require.NoError(t, err)
	assert.Nil(t, event)
}

// -----------------------------------------------------------------------------
// Market data
// -----------------------------------------------------------------------------

func TestDecodeMarketDataSnapshot(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := fixMessage(MsgTypeMarketDataSnapshot, map[quickfix.Tag]string{
		tagSymbol:           "RFX20Dic19",
		tagSecurityExchange: "ROFX",
	})

	entries := mdEntriesGroup()
	bid := entries.Add()
	bid.SetString(tagMDEntryType, "0")
	bid.SetString(tagMDEntryPx, "57390")
	bid.SetString(tagMDEntrySize, "12")
	bid.SetString(tagMDEntryPositionNo, "1")
	offer := entries.Add()
	offer.SetString(tagMDEntryType, "1")
	offer.SetString(tagMDEntryPx, "57410")
	offer.SetString(tagMDEntrySize, "7")
	offer.SetString(tagMDEntryPositionNo, "1")
	volume := entries.Add()
	volume.SetString(tagMDEntryType, "B")
	volume.SetString(tagMDEntrySize, "1500")
	msg.Body.SetGroup(entries)

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)

	assert.Equal(t, models.EventMarketData, event.Type)
	assert.Equal(t, "RFX20Dic19", event.InstrumentID.Symbol)
	assert.Equal(t, "ROFX", event.InstrumentID.MarketID)

	book := event.MarketData
	require.NotNil(t, book)
	require.Len(t, book.BI, 1)
	require.NotNil(t, book.BI[0].Price)
	assert.InDelta(t, 57390, *book.BI[0].Price, 1e-9)
	require.NotNil(t, book.BI[0].Position)
	assert.Equal(t, 1, *book.BI[0].Position)
	require.Len(t, book.OF, 1)

	// traded volume is size-only
	require.NotNil(t, book.TV)
	assert.Nil(t, book.TV.Price)
	require.NotNil(t, book.TV.Size)
	assert.InDelta(t, 1500, *book.TV.Size, 1e-9)
}

func TestDecodeMarketDataSkipsBrokenEntries(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := fixMessage(MsgTypeMarketDataSnapshot, map[quickfix.Tag]string{tagSymbol: "RFX20Dic19"})

	entries := mdEntriesGroup()
	entries.Add().SetString(tagMDEntryPx, "57390") // no entry type
	good := entries.Add()
	good.SetString(tagMDEntryType, "0")
	good.SetString(tagMDEntryPx, "57390")
	msg.Body.SetGroup(entries)

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)
	assert.Len(t, event.MarketData.BI, 1)
}

// -----------------------------------------------------------------------------
// Security list
// -----------------------------------------------------------------------------

func TestDecodeSecurityList(t *testing.T) {
	trans, _ := newTestTranslator()

	msg := fixMessage(MsgTypeSecurityList, map[quickfix.Tag]string{
		tagSecurityReqID:         "req-1",
		tagSecurityRequestResult: "0",
		tagTotNoRelatedSym:       "1",
	})

	related, underlyings, lotRules, sessionRules, ordTypeRules, tifRules, execInstRules := securityListGroups()
	sym := related.Add()
	sym.SetString(tagSymbol, "RFX20Dic19")
	sym.SetString(tagSecurityDesc, "ROFEX 20 Futuro Dic19")
	sym.SetString(tagCFICode, "FXXXSX")
	sym.SetString(tagCurrency, "ARS")
	sym.SetString(tagContractMultiplier, "20")
	sym.SetString(tagLowLimitPrice, "50000")
	sym.SetString(tagHighLimitPrice, "65000")

	under := underlyings.Add()
	under.SetString(tagUnderlyingSymbol, "I.RFX20")
	sym.SetGroup(underlyings)

	lot := lotRules.Add()
	lot.SetString(tagLotType, "2")
	lot.SetString(tagMinLotSize, "1")
	sym.SetGroup(lotRules)

	ordTypeRules.Add().SetString(tagOrdType, "2")
	ordTypeRules.Add().SetString(tagOrdType, "1")
	tifRules.Add().SetString(tagTimeInForce, "0")
	execInstRules.Add().SetString(tagExecInstValue, "G")
	session := sessionRules.Add()
	session.SetString(tagTradingSessionID, "1")
	session.SetGroup(ordTypeRules)
	session.SetGroup(tifRules)
	session.SetGroup(execInstRules)
	sym.SetGroup(sessionRules)

	msg.Body.SetGroup(related)

	event, err := trans.Decode(msg, "ROFX", "ROFX")
	require.NoError(t, err)

	assert.Equal(t, models.EventSecurityList, event.Type)
	list := event.SecurityList
	require.NotNil(t, list)
	assert.Equal(t, "req-1", list.SecurityReqID)
	require.Len(t, list.Tickers, 1)

	ticker := list.Tickers[0]
	assert.Equal(t, "RFX20Dic19", ticker.Symbol)
	assert.Equal(t, "I.RFX20", ticker.UnderlyingSymbol)
	assert.Equal(t, "ARS", ticker.Currency)
	require.NotNil(t, ticker.MinLotSize)
	assert.InDelta(t, 1, *ticker.MinLotSize, 1e-9)
	assert.Equal(t, []string{"Limit", "Market"}, ticker.OrdTypes)
	assert.Equal(t, []string{"Day"}, ticker.TimeInForce)
	assert.Equal(t, []string{"All or None"}, ticker.ExecInstValues)
}

// -----------------------------------------------------------------------------
// Trade capture batches
// -----------------------------------------------------------------------------

func tradeCaptureMessage(requestID, reportID, symbol, lastRequested string, totNum string) *quickfix.Message {
	msg := fixMessage(MsgTypeTradeCaptureReport, map[quickfix.Tag]string{
		tagTradeRequestID:     requestID,
		tagTradeReportID:      reportID,
		tagSymbol:             symbol,
		tagTotNumTradeReports: totNum,
		tagLastRptRequested:   lastRequested,
		tagLastPx:             "57395",
		tagLastQty:            "4",
	})

	sides, parties := tradeSidesGroups()
	side := sides.Add()
	side.SetString(tagSide, "1")
	side.SetString(tagAccount, "REM2989")
	side.SetString(tagOrderID, "ROFX_100")
	party := parties.Add()
	party.SetString(tagPartyID, "REM2989")
	party.SetString(tagPartyIDSource, "D")
	party.SetString(tagPartyRole, "24")
	side.SetGroup(parties)
	msg.Body.SetGroup(sides)

	return msg
}

func TestDecodeTradeCaptureEmitsOnlyWhenComplete(t *testing.T) {
	trans, _ := newTestTranslator()

	first := tradeCaptureMessage("req-1", "T1", "RFX20Dic19", "N", "2")
	event, err := trans.Decode(first, "ROFX", "ROFX")
	require.NoError(t, err)
	assert.Nil(t, event)

	second := tradeCaptureMessage("req-1", "T2", "DOEne20", "Y", "2")
	event, err = trans.Decode(second, "ROFX", "ROFX")
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, models.EventTradeCapture, event.Type)
	batch := event.TradeCapture
	require.NotNil(t, batch)
	assert.True(t, batch.Complete)
	assert.Len(t, batch.Reports, 2)

	report := batch.Reports["T1"]
	require.NotNil(t, report)
	require.Len(t, report.Sides, 1)
	assert.Equal(t, "Buy", report.Sides[0].Side)
	assert.Equal(t, "ROFX_100", report.Sides[0].OrderID)
	require.Contains(t, report.Sides[0].Parties, "REM2989")
}
