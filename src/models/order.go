package models

// -----------------------------------------------------------------------------
// Ledger records. Orders live for the whole process; they are mutated in
// place by later execution reports, never deleted.
// -----------------------------------------------------------------------------

// MOrder is the per-order correlation record keyed by the exchange OrderID.
type MOrder struct {
	OrderID      string
	ClOrdID      string
	OrigClOrdID  string
	TargetCompID string

	Symbol           string
	SecurityExchange string
	Side             string
	OrdType          string
	Status           string

	Price     *float64
	AvgPx     *float64
	LastPx    *float64
	OrderQty  *float64
	LeavesQty *float64
	CumQty    *float64
	LastQty   *float64

	ExecID       string
	TransactTime string
	Text         string

	// Synthesized is set when the first sighting of the order was an update
	// for an OrderID the ledger had never acked.
	Synthesized bool
}

// -----------------------------------------------------------------------------

// MTradeBatch accumulates trade capture reports for one TradeRequestID until
// the last requested report arrives.
type MTradeBatch struct {
	TradeRequestID     string                   `json:"tradeRequestId"`
	TotNumTradeReports int                      `json:"totNumTradeReports"`
	Reports            map[string]*MTradeReport `json:"reports"`
	Complete           bool                     `json:"complete"`
}

// MTradeReport is one trade capture report merged into a batch.
type MTradeReport struct {
	LastPx             *float64     `json:"lastPx,omitempty"`
	LastQty            *float64     `json:"lastQty,omitempty"`
	Symbol             string       `json:"symbol"`
	TransactTime       string       `json:"transactTime,omitempty"`
	PreviouslyReported string       `json:"previouslyReported,omitempty"`
	ExecID             string       `json:"execId,omitempty"`
	SecurityExchange   string       `json:"securityExchange,omitempty"`
	CFICode            string       `json:"cfiCode,omitempty"`
	TrdType            string       `json:"trdType,omitempty"`
	Sides              []MTradeSide `json:"sides"`
}

// MTradeSide is one side of a captured trade.
type MTradeSide struct {
	Side               string            `json:"side"`
	Account            string            `json:"account,omitempty"`
	OrderID            string            `json:"orderId,omitempty"`
	AggressorIndicator string            `json:"aggressorIndicator,omitempty"`
	Parties            map[string]MParty `json:"parties,omitempty"`
}

// MParty describes a party entry nested in a trade side.
type MParty struct {
	PartyIDSource string `json:"partyIdSource"`
	PartyRole     string `json:"partyRole"`
}
