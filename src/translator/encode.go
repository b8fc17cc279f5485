package translator

import (
	"time"

	"fix-gateway/src/utils"

	"github.com/quickfixgo/quickfix"
)

// -----------------------------------------------------------------------------
// Outbound message builders. Every builder returns a fully populated message
// or nothing; validation happens in the command dispatcher before encoding,
// so a partially built message can never reach the wire.
// -----------------------------------------------------------------------------

func buildHeader(msgType, senderCompID, targetCompID string) *quickfix.Message {
	msg := quickfix.NewMessage()
	msg.Header.SetString(tagMsgType, msgType)
	msg.Header.SetString(tagSenderCompID, senderCompID)
	msg.Header.SetString(tagTargetCompID, targetCompID)
	return msg
}

func transactTimeNow() string {
	return utils.UTCTimestamp(time.Now())
}

// -----------------------------------------------------------------------------

// EncodeNewOrderSingle builds a NewOrderSingle (D). Price is omitted from the
// body when nil, as market orders carry no price.
func EncodeNewOrderSingle(senderCompID, targetCompID, account, clOrdID, symbol, sideCode, ordTypeCode string, quantity float64, price *float64) *quickfix.Message {
	msg := buildHeader(MsgTypeNewOrderSingle, senderCompID, targetCompID)

	msg.Body.SetString(tagAccount, account)
	msg.Body.SetString(tagClOrdID, clOrdID)
	msg.Body.SetString(tagOrderQty, utils.FormatQty(quantity))
	msg.Body.SetString(tagOrdType, ordTypeCode)
	if price != nil {
		msg.Body.SetString(tagPrice, utils.FormatQty(*price))
	}
	msg.Body.SetString(tagSide, sideCode)
	msg.Body.SetString(tagTransactTime, transactTimeNow())
	msg.Body.SetString(tagSymbol, symbol)

	return msg
}

// -----------------------------------------------------------------------------

// EncodeOrderCancelRequest builds an OrderCancelRequest (F).
func EncodeOrderCancelRequest(senderCompID, targetCompID, account, clOrdID, orderID, symbol, sideCode string, quantity float64) *quickfix.Message {
	msg := buildHeader(MsgTypeOrderCancelRequest, senderCompID, targetCompID)

	msg.Body.SetString(tagClOrdID, clOrdID)
	msg.Body.SetString(tagOrderID, orderID)
	msg.Body.SetString(tagSide, sideCode)
	msg.Body.SetString(tagTransactTime, transactTimeNow())
	msg.Body.SetString(tagAccount, account)
	msg.Body.SetString(tagOrderQty, utils.FormatQty(quantity))
	msg.Body.SetString(tagSymbol, symbol)
	msg.Body.SetString(tagSecurityExchange, targetCompID)

	return msg
}

// -----------------------------------------------------------------------------

// EncodeOrderCancelReplace builds an OrderCancelReplaceRequest (G). Price and
// quantity are conditional: a nil value leaves the tag off the wire entirely,
// the exchange keeps the order's current value for omitted fields.
func EncodeOrderCancelReplace(senderCompID, targetCompID, account, clOrdID, orderID, origClOrdID, symbol, sideCode, ordTypeCode string, quantity, price *float64) *quickfix.Message {
	msg := buildHeader(MsgTypeOrderCancelReplace, senderCompID, targetCompID)

	msg.Body.SetString(tagAccount, account)
	msg.Body.SetString(tagClOrdID, clOrdID)
	msg.Body.SetString(tagOrderID, orderID)
	msg.Body.SetString(tagOrdType, ordTypeCode)
	msg.Body.SetString(tagOrigClOrdID, origClOrdID)
	if price != nil {
		msg.Body.SetString(tagPrice, utils.FormatQty(*price))
	}
	msg.Body.SetString(tagSide, sideCode)
	msg.Body.SetString(tagTransactTime, transactTimeNow())
	msg.Body.SetString(tagSymbol, symbol)
	if quantity != nil {
		msg.Body.SetString(tagOrderQty, utils.FormatQty(*quantity))
	}

	return msg
}

// -----------------------------------------------------------------------------

// EncodeOrderStatusRequest builds an OrderStatusRequest (H).
func EncodeOrderStatusRequest(senderCompID, targetCompID, orderID, symbol, sideCode string) *quickfix.Message {
	msg := buildHeader(MsgTypeOrderStatusRequest, senderCompID, targetCompID)

	msg.Body.SetString(tagOrderID, orderID)
	msg.Body.SetString(tagSymbol, symbol)
	msg.Body.SetString(tagSide, sideCode)

	return msg
}

// -----------------------------------------------------------------------------

// EncodeOrderMassStatusRequest builds an OrderMassStatusRequest (AF) for all
// orders matching the given security status (0 all, 1 active, 2 inactive).
func EncodeOrderMassStatusRequest(senderCompID, targetCompID, requestID, securityStatus string) *quickfix.Message {
	msg := buildHeader(MsgTypeOrderMassStatus, senderCompID, targetCompID)

	msg.Body.SetString(tagMassStatusReqID, requestID)
	msg.Body.SetString(tagMassStatusReqType, "7") // status for all orders
	if securityStatus != "" {
		msg.Body.SetString(tagSecurityStatus, securityStatus)
	}

	return msg
}

// -----------------------------------------------------------------------------

// EncodeOrderMassCancelRequest builds an OrderMassCancelRequest (q) for all
// orders in a market segment.
func EncodeOrderMassCancelRequest(senderCompID, targetCompID, clOrdID, marketSegmentID string) *quickfix.Message {
	msg := buildHeader(MsgTypeOrderMassCancel, senderCompID, targetCompID)

	msg.Body.SetString(tagMassCancelRequestType, "7") // cancel all orders
	msg.Body.SetString(tagClOrdID, clOrdID)
	msg.Body.SetString(tagTransactTime, transactTimeNow())
	if marketSegmentID != "" {
		msg.Body.SetString(tagMarketSegmentID, marketSegmentID)
	}

	return msg
}

// -----------------------------------------------------------------------------

// EncodeMarketDataRequest builds a MarketDataRequest (V) with one entry type
// group element per requested entry and one symbol group element per
// instrument.
func EncodeMarketDataRequest(senderCompID, targetCompID, requestID string, entries, symbols []string, subscription string, depth int) *quickfix.Message {
	msg := buildHeader(MsgTypeMarketDataRequest, senderCompID, targetCompID)

	msg.Body.SetString(tagMDReqID, requestID)
	msg.Body.SetString(tagSubscriptionRequestType, subscription)
	msg.Body.SetInt(tagMarketDepth, depth)
	msg.Body.SetInt(tagMDUpdateType, 0) // full refresh
	msg.Body.SetString(tagAggregatedBook, "Y")

	entryGroup := quickfix.NewRepeatingGroup(tagNoMDEntryTypes, quickfix.GroupTemplate{
		quickfix.GroupElement(tagMDEntryType),
	})
	for _, entry := range entries {
		entryGroup.Add().SetString(tagMDEntryType, entry)
	}
	msg.Body.SetGroup(entryGroup)

	symbolGroup := quickfix.NewRepeatingGroup(tagNoRelatedSym, quickfix.GroupTemplate{
		quickfix.GroupElement(tagSymbol),
	})
	for _, symbol := range symbols {
		symbolGroup.Add().SetString(tagSymbol, symbol)
	}
	msg.Body.SetGroup(symbolGroup)

	return msg
}

// -----------------------------------------------------------------------------

// Security list request criteria.
const (
	SecurityListBySymbol  = "0"
	SecurityListByCFICode = "1"
	SecurityListByProduct = "2"
	SecurityListAll       = "4"
)

// EncodeSecurityListRequest builds a SecurityListRequest (x). The symbol tag
// carries the symbol or CFI code depending on the criteria.
func EncodeSecurityListRequest(senderCompID, targetCompID, requestID, criteria, symbol, cfiCode, subscription string) *quickfix.Message {
	msg := buildHeader(MsgTypeSecurityListRequest, senderCompID, targetCompID)

	msg.Body.SetString(tagSecurityReqID, requestID)
	msg.Body.SetString(tagSecurityListRequestType, criteria)
	switch criteria {
	case SecurityListBySymbol:
		msg.Body.SetString(tagSymbol, symbol)
	case SecurityListByCFICode:
		msg.Body.SetString(tagSymbol, cfiCode)
	}
	msg.Body.SetString(tagSubscriptionRequestType, subscription)

	return msg
}

// -----------------------------------------------------------------------------

// EncodeSecurityStatusRequest builds a SecurityStatusRequest (e).
func EncodeSecurityStatusRequest(senderCompID, targetCompID, requestID, symbol, subscription string) *quickfix.Message {
	msg := buildHeader(MsgTypeSecurityStatusRequest, senderCompID, targetCompID)

	msg.Body.SetString(tagSecurityStatusReqID, requestID)
	msg.Body.SetString(tagSymbol, symbol)
	msg.Body.SetString(tagSubscriptionRequestType, subscription)

	return msg
}

// -----------------------------------------------------------------------------

// EncodeTradeCaptureReportRequest builds a TradeCaptureReportRequest (AD).
// Without a symbol the request selects by account through the party group.
func EncodeTradeCaptureReportRequest(senderCompID, targetCompID, requestID, account, symbol string) *quickfix.Message {
	msg := buildHeader(MsgTypeTradeCaptureRequest, senderCompID, targetCompID)

	msg.Body.SetString(tagTradeRequestID, requestID)
	msg.Body.SetString(tagTradeRequestType, "1") // matched trades by criteria

	if symbol == "" {
		parties := quickfix.NewRepeatingGroup(tagNoPartyIDs, quickfix.GroupTemplate{
			quickfix.GroupElement(tagPartyID),
			quickfix.GroupElement(tagPartyIDSource),
			quickfix.GroupElement(tagPartyRole),
		})
		party := parties.Add()
		party.SetString(tagPartyID, account)
		party.SetString(tagPartyIDSource, "D") // proprietary
		party.SetString(tagPartyRole, "24")    // customer account
		msg.Body.SetGroup(parties)
	} else {
		msg.Body.SetString(tagSymbol, symbol)
	}

	return msg
}

// -----------------------------------------------------------------------------

// EncodeAllocationInstruction builds an AllocationInstruction (J).
func EncodeAllocationInstruction(senderCompID, targetCompID, allocID, symbol, sideCode, tradeDate string, quantity float64) *quickfix.Message {
	msg := buildHeader(MsgTypeAllocationInstruction, senderCompID, targetCompID)

	msg.Body.SetString(tagAllocID, allocID)
	msg.Body.SetString(tagAllocTransType, "0") // new
	msg.Body.SetString(tagAllocType, "5")      // calculated
	msg.Body.SetString(tagSymbol, symbol)
	msg.Body.SetString(tagQuantity, utils.FormatQty(quantity))
	msg.Body.SetString(tagSide, sideCode)
	msg.Body.SetString(tagTradeDate, tradeDate)

	return msg
}

// -----------------------------------------------------------------------------

// EncodeTestRequest builds a TestRequest (1); the counterparty answers with
// a heartbeat echoing the ID.
func EncodeTestRequest(senderCompID, targetCompID, testReqID string) *quickfix.Message {
	msg := buildHeader(MsgTypeTestRequest, senderCompID, targetCompID)
	msg.Body.SetString(tagTestReqID, testReqID)
	return msg
}
