package models

// -----------------------------------------------------------------------------
// Normalized events broadcast to subscribers. Field names and nesting are the
// downstream wire contract; consumers match on them, do not rename.
// -----------------------------------------------------------------------------

// Event type tags carried in MEvent.Type.
const (
	EventOrderReport      = "or"
	EventOrderStatus      = "os"
	EventMarketData       = "md"
	EventSecurityList     = "sl"
	EventSecurityStatus   = "ss"
	EventCancelReject     = "cr"
	EventTradingSession   = "ts"
	EventNews             = "nw"
	EventSessionReject    = "rj"
	EventBusinessReject   = "br"
	EventMarketDataReject = "mr"
	EventTradeCapture     = "tc"
)

// -----------------------------------------------------------------------------

// MEvent is the envelope serialized once per publish and fanned out to every
// subscriber. Exactly one payload field is set, selected by Type.
type MEvent struct {
	Type         string `json:"type"`
	SenderCompID string `json:"senderCompID,omitempty"`

	OrderReport  *MOrderReport  `json:"orderReport,omitempty"`
	StatusReport *MStatusReport `json:"statusReport,omitempty"`

	InstrumentID *MInstrumentID `json:"instrumentId,omitempty"`
	MarketData   *MMarketData   `json:"marketData,omitempty"`

	SecurityList *MSecurityList `json:"securityList,omitempty"`
	TradeCapture *MTradeBatch   `json:"tradeCapture,omitempty"`

	// Details carries the flat payloads (rejects, news, session status).
	Details map[string]interface{} `json:"details,omitempty"`
}

// -----------------------------------------------------------------------------

// MAccountID wraps the trading account identifier.
type MAccountID struct {
	ID string `json:"id"`
}

// MInstrumentID identifies an instrument within a market.
type MInstrumentID struct {
	MarketID string `json:"marketId"`
	Symbol   string `json:"symbol"`
}

// -----------------------------------------------------------------------------

// MOrderReport is the normalized execution report payload. Optional fields are
// pointers so absent-on-the-wire stays absent in JSON.
type MOrderReport struct {
	AccountID    *MAccountID    `json:"accountId,omitempty"`
	AvgPx        *float64       `json:"avgPx,omitempty"`
	ClOrdID      string         `json:"clOrdId"`
	OrigClOrdID  *string        `json:"origClOrdId,omitempty"`
	CumQty       *float64       `json:"cumQty,omitempty"`
	ExecID       string         `json:"execId"`
	LastPx       *float64       `json:"lastPx,omitempty"`
	LastQty      *float64       `json:"lastQty,omitempty"`
	InstrumentID *MInstrumentID `json:"instrumentId,omitempty"`
	LeavesQty    *float64       `json:"leavesQty,omitempty"`
	OrdType      string         `json:"ordType,omitempty"`
	OrderID      string         `json:"orderId"`
	OrderQty     *float64       `json:"orderQty,omitempty"`
	Price        *float64       `json:"price,omitempty"`
	Side         string         `json:"side,omitempty"`
	Status       string         `json:"status"`
	TransactTime string         `json:"transactTime,omitempty"`
	Text         string         `json:"text,omitempty"`
}

// -----------------------------------------------------------------------------

// MStatusReport is the order status payload. The exchange answers a status
// request in one of two shapes: with mass-request bookkeeping (TotNumReports
// present) or as a plain per-order report.
type MStatusReport struct {
	TargetCompID     string   `json:"targetCompId,omitempty"`
	TotNumReports    *int     `json:"totNumReports,omitempty"`
	MassStatusReqID  string   `json:"massStatusReqId,omitempty"`
	LastRptRequested string   `json:"lastRptRequested,omitempty"`
	Account          string   `json:"account,omitempty"`
	AvgPx            *float64 `json:"avgPx,omitempty"`
	ClOrdID          string   `json:"clOrdId,omitempty"`
	CumQty           *float64 `json:"cumQty,omitempty"`
	ExecID           string   `json:"execId,omitempty"`
	LastPx           *float64 `json:"lastPx,omitempty"`
	LastQty          *float64 `json:"lastQty,omitempty"`
	OrderID          string   `json:"orderId,omitempty"`
	OrderQty         *float64 `json:"orderQty,omitempty"`
	OrdStatus        string   `json:"ordStatus,omitempty"`
	OrdType          string   `json:"ordType,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	Symbol           string   `json:"symbol,omitempty"`
	Side             string   `json:"side,omitempty"`
	TransactTime     string   `json:"transactTime,omitempty"`
	LeavesQty        *float64 `json:"leavesQty,omitempty"`
	Text             string   `json:"text,omitempty"`
	SecurityExchange string   `json:"securityExchange,omitempty"`
}

// -----------------------------------------------------------------------------

// MMarketData is the book snapshot payload. BI holds bids, OF offers, TV the
// trade volume entry when present.
type MMarketData struct {
	BI []MMarketDataEntry `json:"BI"`
	OF []MMarketDataEntry `json:"OF"`
	TV *MMarketDataEntry  `json:"TV,omitempty"`
}

// MMarketDataEntry is one book level. Presence of each field depends on the
// FIX entry type.
type MMarketDataEntry struct {
	Price    *float64 `json:"price,omitempty"`
	Size     *float64 `json:"size,omitempty"`
	Position *int     `json:"position,omitempty"`
}

// -----------------------------------------------------------------------------

// MSecurityList is the instrument definition payload.
type MSecurityList struct {
	SecurityReqID           string    `json:"securityReqId"`
	SecurityResponseID      string    `json:"securityResponseId,omitempty"`
	SecurityRequestResult   *int      `json:"securityRequestResult,omitempty"`
	SecurityListRequestType *int      `json:"securityListRequestType,omitempty"`
	TotNoRelatedSym         *int      `json:"totNoRelatedSym,omitempty"`
	MarketSegmentID         string    `json:"marketSegmentId,omitempty"`
	Tickers                 []MTicker `json:"tickers"`
}

// MTicker is one instrument definition from a security list response.
type MTicker struct {
	Symbol                   string   `json:"symbol"`
	SecurityDesc             string   `json:"securityDesc,omitempty"`
	CFICode                  string   `json:"cfiCode,omitempty"`
	Currency                 string   `json:"currency,omitempty"`
	Factor                   *float64 `json:"factor,omitempty"`
	ContractMultiplier       *float64 `json:"contractMultiplier,omitempty"`
	StrikePrice              *float64 `json:"strikePrice,omitempty"`
	StrikeCurrency           string   `json:"strikeCurrency,omitempty"`
	MaturityMonthYear        string   `json:"maturityMonthYear,omitempty"`
	MaturityDate             string   `json:"maturityDate,omitempty"`
	MinPriceIncrement        *float64 `json:"minPriceIncrement,omitempty"`
	TickSize                 string   `json:"tickSize,omitempty"`
	InstrumentPricePrecision string   `json:"instrumentPricePrecision,omitempty"`
	InstrumentSizePrecision  string   `json:"instrumentSizePrecision,omitempty"`
	MaxTradeVol              *float64 `json:"maxTradeVol,omitempty"`
	MinTradeVol              *float64 `json:"minTradeVol,omitempty"`
	LowLimitPrice            *float64 `json:"lowLimitPrice,omitempty"`
	HighLimitPrice           *float64 `json:"highLimitPrice,omitempty"`
	UnderlyingSymbol         string   `json:"underlyingSymbol,omitempty"`
	LotType                  string   `json:"lotType,omitempty"`
	MinLotSize               *float64 `json:"minLotSize,omitempty"`
	MaxLotSize               string   `json:"maxLotSize,omitempty"`
	TradingSessionID         string   `json:"tradingSessionId,omitempty"`
	OrdTypes                 []string `json:"ordType,omitempty"`
	TimeInForce              []string `json:"timeInForce,omitempty"`
	ExecInstValues           []string `json:"execInstValue,omitempty"`
}
