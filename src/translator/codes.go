package translator

import "fmt"

// -----------------------------------------------------------------------------
// Enum vocabularies. The human-readable strings are part of the downstream
// wire contract and match what the exchange documents; consumers compare
// against them verbatim. Codes without a mapping pass through as
// "UNKNOWN (<code>)" so new exchange values degrade visibly instead of
// failing the whole message.
// -----------------------------------------------------------------------------

func unknownCode(code string) string {
	return fmt.Sprintf("UNKNOWN (%s)", code)
}

func lookup(table map[string]string, code string) string {
	if v, ok := table[code]; ok {
		return v
	}
	return unknownCode(code)
}

// -----------------------------------------------------------------------------

var sideNames = map[string]string{
	"1": "Buy",
	"2": "Sell",
	"5": "SellShort",
}

var sideCodes = map[string]string{
	"Buy":       "1",
	"Sell":      "2",
	"SellShort": "5",
}

// SideName maps a FIX side code to its vocabulary name.
func SideName(code string) string { return lookup(sideNames, code) }

// SideCode maps a vocabulary name back to its FIX code. ok is false for
// names outside the vocabulary.
func SideCode(name string) (string, bool) {
	c, ok := sideCodes[name]
	return c, ok
}

// -----------------------------------------------------------------------------

var ordTypeNames = map[string]string{
	"1": "Market",
	"2": "Limit",
	"K": "Market with left over as limit",
	"3": "Stop Merval",
	"4": "Stop Limit",
	"z": "Stop",
}

var ordTypeCodes = map[string]string{
	"Market":                         "1",
	"Limit":                          "2",
	"Market with left over as limit": "K",
	"Stop Merval":                    "3",
	"Stop Limit":                     "4",
	"Stop":                           "z",
}

// OrdTypeName maps a FIX order type code to its vocabulary name.
func OrdTypeName(code string) string { return lookup(ordTypeNames, code) }

// OrdTypeCode maps a vocabulary name back to its FIX code.
func OrdTypeCode(name string) (string, bool) {
	c, ok := ordTypeCodes[name]
	return c, ok
}

// -----------------------------------------------------------------------------

var ordStatusNames = map[string]string{
	"0": "NEW",
	"1": "PARTIALLY FILLED",
	"2": "FILLED",
	"4": "CANCELLED",
	"8": "REJECTED",
	"9": "SUSPENDED",
}

// OrdStatusName maps a FIX order status code to its vocabulary name.
func OrdStatusName(code string) string { return lookup(ordStatusNames, code) }

// -----------------------------------------------------------------------------

var execTypeNames = map[string]string{
	"0": "NEW",
	"4": "CANCELLED",
	"5": "REPLACED",
	"8": "REJECTED",
	"F": "TRADE (PARTIAL FILL OR FILL)",
	"I": "ORDER STATUS",
}

// ExecTypeName maps a FIX exec type code to its vocabulary name.
func ExecTypeName(code string) string { return lookup(execTypeNames, code) }

// -----------------------------------------------------------------------------

var timeInForceNames = map[string]string{
	"0": "Day",
	"1": "Good Till Cancel",
	"2": "At the Opening",
	"3": "Immediate or Cancel",
	"4": "Fill or Kill",
	"5": "Good Till Crossing",
	"6": "Good Till Date",
	"7": "At the Close",
	"8": "Good Through Crossing",
	"9": "At Crossing",
}

// TimeInForceName maps a FIX time in force code to its vocabulary name.
func TimeInForceName(code string) string { return lookup(timeInForceNames, code) }

// -----------------------------------------------------------------------------

var tradSesStatusNames = map[string]string{
	"0": "Unknown",
	"1": "Halted",
	"2": "Open",
	"3": "Closed",
	"4": "Pre-Open",
	"5": "Pre-Close",
	"6": "Request Rejected",
}

// TradSesStatusName maps a trading session status code to its name.
func TradSesStatusName(code string) string { return lookup(tradSesStatusNames, code) }

var tradingSessionSubIDNames = map[string]string{
	"0": "Pre-Trading",
	"1": "Trading",
	"2": "Post-Trading",
	"3": "After Hour",
	"4": "Closed",
}

// TradingSessionSubIDName maps a trading session sub ID to its name.
func TradingSessionSubIDName(code string) string { return lookup(tradingSessionSubIDNames, code) }

// -----------------------------------------------------------------------------

var cxlRejReasonNames = map[string]string{
	"0":  "Too late to Cancel",
	"1":  "Unknown order",
	"99": "Other",
}

// CxlRejReasonName maps a cancel reject reason code to its name.
func CxlRejReasonName(code string) string { return lookup(cxlRejReasonNames, code) }

// -----------------------------------------------------------------------------

var mdReqRejReasonNames = map[string]string{
	"0": "Unknown symbol",
	"1": "Duplicate MDReqID",
	"2": "Insufficient Bandwidth",
	"3": "Insufficient Permissions",
	"4": "Unsupported Subscription Request Type",
	"5": "Unsupported MarketDepth",
	"6": "Unsupported MDUpdateType",
	"7": "Unsupported AggregatedBook",
	"8": "Unsupported MDEntryType",
}

// MDReqRejReasonName maps a market data reject reason code to its name.
func MDReqRejReasonName(code string) string { return lookup(mdReqRejReasonNames, code) }

// -----------------------------------------------------------------------------

var businessRejectReasonNames = map[string]string{
	"0":  "Other",
	"1":  "Unknown ID",
	"2":  "Unknown Security",
	"3":  "Unsupported Message Type",
	"4":  "Application not available",
	"5":  "Conditionally required field missing",
	"6":  "Not Authorized",
	"7":  "DeliverTo firm not available at this time",
	"18": "Invalid Price Increment",
}

// BusinessRejectReasonName maps a business reject reason code to its name.
func BusinessRejectReasonName(code string) string { return lookup(businessRejectReasonNames, code) }

// -----------------------------------------------------------------------------

var sessionRejectReasonNames = map[string]string{
	"0":  "Invalid Tag Number",
	"1":  "Required Tag Missing",
	"2":  "Tag not defined for this message type",
	"3":  "Undefined Tag",
	"4":  "Tag specified without a value",
	"5":  "Value is incorrect (out of range) for this tag",
	"6":  "Incorrect data format for value",
	"7":  "Decryption problem",
	"8":  "Signature problem",
	"9":  "CompID problem",
	"10": "SendingTime accuracy problem",
	"11": "Invalid MsgType",
	"12": "XML Validation Error",
	"13": "Tag appears more than once",
	"14": "Tag specified out of required order",
	"15": "Repeating Group fields out of order",
	"16": "Incorrect NumInGroup count for repeating group",
	"17": "Non 'data' value includes field delimiter (SOH character)",
	"99": "Other",
}

// SessionRejectReasonName maps a session reject reason code to its name.
func SessionRejectReasonName(code string) string { return lookup(sessionRejectReasonNames, code) }

// -----------------------------------------------------------------------------

var execInstNames = map[string]string{
	"G": "All or None",
	"b": "Best Execution",
	"B": "Cancel if Not Best",
}

// ExecInstName maps an exec instruction value to its name.
func ExecInstName(code string) string { return lookup(execInstNames, code) }

// -----------------------------------------------------------------------------

var securityTradingStatusNames = map[string]string{
	"2": "Trading Halt",
	"3": "Resume",
}

// SecurityTradingStatusName maps a security trading status code to its name.
func SecurityTradingStatusName(code string) string { return lookup(securityTradingStatusNames, code) }

// -----------------------------------------------------------------------------

// validMDEntryCodes is the accepted set for market data request entry types.
var validMDEntryCodes = map[string]bool{
	"0": true, "1": true, "2": true, "4": true, "5": true,
	"6": true, "7": true, "8": true, "B": true, "C": true,
}

// ValidMDEntryCode reports whether the entry type may appear in a market
// data request.
func ValidMDEntryCode(code string) bool { return validMDEntryCodes[code] }
