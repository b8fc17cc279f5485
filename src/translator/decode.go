package translator

import (
	"fmt"

	"fix-gateway/src/ledger"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"

	"github.com/quickfixgo/quickfix"
)

// -----------------------------------------------------------------------------
// Translator turns inbound FIX application messages into normalized events,
// updating the order ledger and trade report store along the way. Dispatch is
// keyed on MsgType; execution reports sub-dispatch on ExecType.
// -----------------------------------------------------------------------------

type Translator struct {
	logger  *logger.Logger
	account string

	ledger       *ledger.Ledger
	tradeReports *ledger.TradeReportStore
}

// -----------------------------------------------------------------------------

// NewTranslator creates a translator bound to the given stores.
func NewTranslator(account string, orders *ledger.Ledger, tradeReports *ledger.TradeReportStore, logger *logger.Logger) *Translator {
	return &Translator{
		logger:       logger,
		account:      account,
		ledger:       orders,
		tradeReports: tradeReports,
	}
}

// -----------------------------------------------------------------------------

// Decode translates one application message into its normalized event. A nil
// event with nil error means the message type needs no broadcast.
func (t *Translator) Decode(msg *quickfix.Message, senderCompID, targetCompID string) (*models.MEvent, error) {
	msgType, err := msg.Header.GetString(tagMsgType)
	if err != nil {
		return nil, fmt.Errorf("message without MsgType: %v", err)
	}

	switch msgType {
	case MsgTypeExecutionReport:
		return t.decodeExecutionReport(msg, senderCompID, targetCompID)
	case MsgTypeOrderCancelReject:
		return t.decodeOrderCancelReject(msg, senderCompID, targetCompID)
	case MsgTypeMarketDataSnapshot:
		return t.decodeMarketDataSnapshot(msg, senderCompID)
	case MsgTypeMarketDataReject:
		return t.decodeMarketDataReject(msg, senderCompID)
	case MsgTypeSecurityList:
		return t.decodeSecurityList(msg, senderCompID)
	case MsgTypeSecurityStatus:
		return t.decodeSecurityStatus(msg, senderCompID)
	case MsgTypeTradeCaptureReport:
		return t.decodeTradeCaptureReport(msg, senderCompID)
	case MsgTypeTradingSessionStatus:
		return t.decodeTradingSessionStatus(msg, senderCompID)
	case MsgTypeNews:
		return t.decodeNews(msg, senderCompID)
	case MsgTypeBusinessReject:
		return t.decodeBusinessReject(msg, senderCompID)
	case MsgTypeReject:
		return t.decodeSessionReject(msg, senderCompID)
	default:
		t.logger.Debug("no decoder for message type %s, ignoring", msgType)
		return nil, nil
	}
}

// -----------------------------------------------------------------------------
// Execution reports
// -----------------------------------------------------------------------------

func (t *Translator) decodeExecutionReport(msg *quickfix.Message, senderCompID, targetCompID string) (*models.MEvent, error) {
	execType, err := reqString(MsgTypeExecutionReport, &msg.Body, tagExecType)
	if err != nil {
		return nil, err
	}

	switch execType {
	case execTypeNew:
		return t.decodeOrderAck(msg, senderCompID, targetCompID)
	case execTypeCanceled, execTypeReplaced, execTypeTrade:
		return t.decodeOrderUpdate(msg, senderCompID, targetCompID)
	case execTypeOrderStatus:
		return t.decodeOrderStatus(msg, senderCompID, targetCompID)
	case execTypeRejected:
		return t.decodeOrderReject(msg, senderCompID, targetCompID)
	default:
		t.logger.Warning("execution report with unmapped exec type %s", execType)
		return nil, nil
	}
}

// orderFromReport extracts the order snapshot common to acks and updates.
func (t *Translator) orderFromReport(msg *quickfix.Message, targetCompID string) (*models.MOrder, error) {
	clOrdID, err := reqString(MsgTypeExecutionReport, &msg.Body, tagClOrdID)
	if err != nil {
		return nil, err
	}
	orderID, err := reqString(MsgTypeExecutionReport, &msg.Body, tagOrderID)
	if err != nil {
		return nil, err
	}
	status, err := reqString(MsgTypeExecutionReport, &msg.Body, tagOrdStatus)
	if err != nil {
		return nil, err
	}

	order := &models.MOrder{
		OrderID:      orderID,
		ClOrdID:      clOrdID,
		TargetCompID: targetCompID,
		Status:       OrdStatusName(status),
	}

	if v, ok := optString(&msg.Body, tagOrigClOrdID); ok {
		order.OrigClOrdID = v
	}
	if v, ok := optString(&msg.Body, tagSymbol); ok {
		order.Symbol = v
	}
	if v, ok := optString(&msg.Body, tagSecurityExchange); ok {
		order.SecurityExchange = v
	}
	if v, ok := optString(&msg.Body, tagSide); ok {
		order.Side = SideName(v)
	}
	if v, ok := optString(&msg.Body, tagOrdType); ok {
		order.OrdType = OrdTypeName(v)
	}
	if v, ok := optString(&msg.Body, tagExecID); ok {
		order.ExecID = v
	}
	if v, ok := optString(&msg.Body, tagTransactTime); ok {
		order.TransactTime = v
	}
	if v, ok := optString(&msg.Body, tagText); ok {
		order.Text = v
	}

	order.Price = optFloat(&msg.Body, tagPrice)
	order.AvgPx = optFloat(&msg.Body, tagAvgPx)
	order.LastPx = optFloat(&msg.Body, tagLastPx)
	order.LastQty = optFloat(&msg.Body, tagLastQty)
	order.OrderQty = optFloat(&msg.Body, tagOrderQty)
	order.LeavesQty = optFloat(&msg.Body, tagLeavesQty)
	order.CumQty = optFloat(&msg.Body, tagCumQty)

	return order, nil
}

// reportFromOrder builds the broadcast payload from a ledger record.
func (t *Translator) reportFromOrder(order *models.MOrder, withFills bool) *models.MOrderReport {
	report := &models.MOrderReport{
		AccountID:    &models.MAccountID{ID: t.account},
		ClOrdID:      order.ClOrdID,
		CumQty:       order.CumQty,
		ExecID:       order.ExecID,
		InstrumentID: &models.MInstrumentID{MarketID: order.SecurityExchange, Symbol: order.Symbol},
		LeavesQty:    order.LeavesQty,
		OrdType:      order.OrdType,
		OrderID:      order.OrderID,
		OrderQty:     order.OrderQty,
		Price:        order.Price,
		Side:         order.Side,
		Status:       order.Status,
		TransactTime: order.TransactTime,
		Text:         order.Text,
	}
	if withFills {
		report.AvgPx = order.AvgPx
		report.LastPx = order.LastPx
		report.LastQty = order.LastQty
		if order.OrigClOrdID != "" {
			orig := order.OrigClOrdID
			report.OrigClOrdID = &orig
		}
	}
	return report
}

func (t *Translator) decodeOrderAck(msg *quickfix.Message, senderCompID, targetCompID string) (*models.MEvent, error) {
	order, err := t.orderFromReport(msg, targetCompID)
	if err != nil {
		return nil, err
	}
	t.ledger.RecordAck(order)

	return &models.MEvent{
		Type:         models.EventOrderReport,
		SenderCompID: senderCompID,
		OrderReport:  t.reportFromOrder(order, false),
	}, nil
}

func (t *Translator) decodeOrderUpdate(msg *quickfix.Message, senderCompID, targetCompID string) (*models.MEvent, error) {
	order, err := t.orderFromReport(msg, targetCompID)
	if err != nil {
		return nil, err
	}
	merged := t.ledger.RecordUpdate(order)

	return &models.MEvent{
		Type:         models.EventOrderReport,
		SenderCompID: senderCompID,
		OrderReport:  t.reportFromOrder(merged, true),
	}, nil
}

// decodeOrderReject handles ExecType 8. The exchange reports OrderID as NONE
// for orders it never accepted, so nothing is written to the ledger.
func (t *Translator) decodeOrderReject(msg *quickfix.Message, senderCompID, targetCompID string) (*models.MEvent, error) {
	clOrdID, err := reqString(MsgTypeExecutionReport, &msg.Body, tagClOrdID)
	if err != nil {
		return nil, err
	}
	status, err := reqString(MsgTypeExecutionReport, &msg.Body, tagOrdStatus)
	if err != nil {
		return nil, err
	}

	report := &models.MOrderReport{
		ClOrdID:   clOrdID,
		Status:    OrdStatusName(status),
		CumQty:    optFloat(&msg.Body, tagCumQty),
		AvgPx:     optFloat(&msg.Body, tagAvgPx),
		Price:     optFloat(&msg.Body, tagPrice),
		OrderQty:  optFloat(&msg.Body, tagOrderQty),
		LeavesQty: optFloat(&msg.Body, tagLeavesQty),
	}
	if v, ok := optString(&msg.Body, tagOrderID); ok {
		report.OrderID = v
	}
	if v, ok := optString(&msg.Body, tagExecID); ok {
		report.ExecID = v
	}
	if v, ok := optString(&msg.Body, tagSide); ok {
		report.Side = SideName(v)
	}
	if v, ok := optString(&msg.Body, tagTransactTime); ok {
		report.TransactTime = v
	}
	if v, ok := optString(&msg.Body, tagText); ok {
		report.Text = v
	}
	if v, ok := optString(&msg.Body, tagSymbol); ok {
		exch, _ := optString(&msg.Body, tagSecurityExchange)
		report.InstrumentID = &models.MInstrumentID{MarketID: exch, Symbol: v}
	}

	return &models.MEvent{
		Type:         models.EventOrderReport,
		SenderCompID: senderCompID,
		OrderReport:  report,
	}, nil
}

// decodeOrderStatus handles ExecType I. The response comes in two shapes:
// with mass-request bookkeeping when TotNumReports (911) is present, or as a
// plain per-order report otherwise.
func (t *Translator) decodeOrderStatus(msg *quickfix.Message, senderCompID, targetCompID string) (*models.MEvent, error) {
	report := &models.MStatusReport{
		TargetCompID: targetCompID,
		AvgPx:        optFloat(&msg.Body, tagAvgPx),
		CumQty:       optFloat(&msg.Body, tagCumQty),
		LeavesQty:    optFloat(&msg.Body, tagLeavesQty),
	}
	if v, ok := optString(&msg.Body, tagExecID); ok {
		report.ExecID = v
	}
	if v, ok := optString(&msg.Body, tagOrderID); ok {
		report.OrderID = v
	}
	if v, ok := optString(&msg.Body, tagOrdStatus); ok {
		report.OrdStatus = OrdStatusName(v)
	}
	if v, ok := optString(&msg.Body, tagSymbol); ok {
		report.Symbol = v
	}
	if v, ok := optString(&msg.Body, tagSide); ok {
		report.Side = SideName(v)
	}
	if v, ok := optString(&msg.Body, tagTransactTime); ok {
		report.TransactTime = v
	}
	if v, ok := optString(&msg.Body, tagText); ok {
		report.Text = v
	}

	if msg.Body.Has(tagTotNumReports) {
		// mass status shape
		tot, err := reqInt(MsgTypeExecutionReport, &msg.Body, tagTotNumReports)
		if err != nil {
			return nil, err
		}
		report.TotNumReports = &tot
		if v, ok := optString(&msg.Body, tagMassStatusReqID); ok {
			report.MassStatusReqID = v
		}
		if v, ok := optString(&msg.Body, tagLastRptRequested); ok {
			report.LastRptRequested = v
		}

		// per-order detail is only present when the mass request matched
		if tot > 0 {
			t.fillStatusOrderDetail(msg, report)
		}
	} else {
		// single order shape
		t.fillStatusOrderDetail(msg, report)
		if v, ok := optString(&msg.Body, tagSecurityExchange); ok {
			report.SecurityExchange = v
		}
	}

	return &models.MEvent{
		Type:         models.EventOrderStatus,
		SenderCompID: senderCompID,
		StatusReport: report,
	}, nil
}

func (t *Translator) fillStatusOrderDetail(msg *quickfix.Message, report *models.MStatusReport) {
	if v, ok := optString(&msg.Body, tagAccount); ok {
		report.Account = v
	}
	if v, ok := optString(&msg.Body, tagClOrdID); ok {
		report.ClOrdID = v
	}
	if v, ok := optString(&msg.Body, tagOrdType); ok {
		report.OrdType = OrdTypeName(v)
	}
	report.LastPx = optFloat(&msg.Body, tagLastPx)
	report.LastQty = optFloat(&msg.Body, tagLastQty)
	report.OrderQty = optFloat(&msg.Body, tagOrderQty)
	report.Price = optFloat(&msg.Body, tagPrice)
}

// -----------------------------------------------------------------------------
// Rejects, session status, news
// -----------------------------------------------------------------------------

func (t *Translator) decodeOrderCancelReject(msg *quickfix.Message, senderCompID, targetCompID string) (*models.MEvent, error) {
	clOrdID, err := reqString(MsgTypeOrderCancelReject, &msg.Body, tagClOrdID)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"targetCompId": targetCompID,
		"clOrdId":      clOrdID,
	}
	if v, ok := optString(&msg.Body, tagOrigClOrdID); ok {
		details["origClOrdId"] = v
	}
	if v, ok := optString(&msg.Body, tagOrderID); ok {
		details["orderId"] = v
	}
	if v, ok := optString(&msg.Body, tagOrdStatus); ok {
		details["ordStatus"] = OrdStatusName(v)
	}
	if v, ok := optString(&msg.Body, tagCxlRejResponseTo); ok {
		details["cxlRejResponseTo"] = v
	}
	if v, ok := optString(&msg.Body, tagCxlRejReason); ok {
		details["cxlRejReason"] = CxlRejReasonName(v)
	}

	return &models.MEvent{
		Type:         models.EventCancelReject,
		SenderCompID: senderCompID,
		Details:      details,
	}, nil
}

func (t *Translator) decodeTradingSessionStatus(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	status, err := reqString(MsgTypeTradingSessionStatus, &msg.Body, tagTradSesStatus)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"tradSesStatus": TradSesStatusName(status),
	}
	if v, ok := optString(&msg.Body, tagTradingSessionID); ok {
		details["tradingSessionId"] = v
	}
	if v, ok := optString(&msg.Body, tagMarketID); ok {
		details["marketID"] = v
	}
	if v, ok := optString(&msg.Body, tagMarketSegmentID); ok {
		details["marketSegmentID"] = v
	}
	if v, ok := optString(&msg.Body, tagText); ok {
		details["text"] = v
	}
	if v, ok := optString(&msg.Body, tagTradingSessionSubID); ok {
		details["tradingSessionSubId"] = TradingSessionSubIDName(v)
	}

	return &models.MEvent{
		Type:         models.EventTradingSession,
		SenderCompID: senderCompID,
		Details:      details,
	}, nil
}

func (t *Translator) decodeNews(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	headline, err := reqString(MsgTypeNews, &msg.Body, tagHeadline)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"headline": headline,
	}
	if v, ok := optString(&msg.Body, tagOrigTime); ok {
		details["origTime"] = v
	}
	if v, ok := optString(&msg.Body, tagMarketSegmentID); ok {
		details["marketSegmentID"] = v
	}

	return &models.MEvent{
		Type:         models.EventNews,
		SenderCompID: senderCompID,
		Details:      details,
	}, nil
}

func (t *Translator) decodeBusinessReject(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	reason, err := reqString(MsgTypeBusinessReject, &msg.Body, tagBusinessRejectReason)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"businessRejectReason": BusinessRejectReasonName(reason),
	}
	if v, ok := optString(&msg.Body, tagRefMsgType); ok {
		details["refMsgType"] = v
	}
	if v, ok := optString(&msg.Body, tagText); ok {
		details["text"] = v
	}

	return &models.MEvent{
		Type:         models.EventBusinessReject,
		SenderCompID: senderCompID,
		Details:      details,
	}, nil
}

// DecodeSessionReject translates a session-level Reject (3). Exposed
// separately because it arrives through the admin callback.
func (t *Translator) DecodeSessionReject(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	return t.decodeSessionReject(msg, senderCompID)
}

func (t *Translator) decodeSessionReject(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	details := map[string]interface{}{}
	if v, ok := optString(&msg.Body, tagRefSeqNum); ok {
		details["refSeqNum"] = v
	}
	if v, ok := optString(&msg.Body, tagRefTagID); ok {
		details["refTagId"] = v
	}
	if v, ok := optString(&msg.Body, tagRefMsgType); ok {
		details["refMsgType"] = v
	}
	if v, ok := optString(&msg.Body, tagSessionRejectReason); ok {
		details["sessionRejectReason"] = SessionRejectReasonName(v)
	}
	if v, ok := optString(&msg.Body, tagText); ok {
		details["text"] = v
	}

	return &models.MEvent{
		Type:         models.EventSessionReject,
		SenderCompID: senderCompID,
		Details:      details,
	}, nil
}

func (t *Translator) decodeMarketDataReject(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	reqID, err := reqString(MsgTypeMarketDataReject, &msg.Body, tagMDReqID)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"MDReqId": reqID,
	}
	if v, ok := optString(&msg.Body, tagMDReqRejReason); ok {
		details["MDReqRejReason"] = MDReqRejReasonName(v)
	}
	if v, ok := optString(&msg.Body, tagText); ok {
		details["text"] = v
	}

	return &models.MEvent{
		Type:         models.EventMarketDataReject,
		SenderCompID: senderCompID,
		Details:      details,
	}, nil
}

func (t *Translator) decodeSecurityStatus(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	symbol, err := reqString(MsgTypeSecurityStatus, &msg.Body, tagSymbol)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"symbol": symbol,
	}
	if v, ok := optString(&msg.Body, tagSecurityTradingStatus); ok {
		details["securityTradingStatus"] = SecurityTradingStatusName(v)
	}
	if v, ok := optString(&msg.Body, tagSecurityStatusReqID); ok {
		details["securityStatusReqId"] = v
	}

	return &models.MEvent{
		Type:         models.EventSecurityStatus,
		SenderCompID: senderCompID,
		Details:      details,
	}, nil
}
