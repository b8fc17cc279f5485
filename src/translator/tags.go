package translator

import "github.com/quickfixgo/quickfix"

// -----------------------------------------------------------------------------
// FIX tag and MsgType constants for the subset of FIX 5.0 SP2 the gateway
// speaks.
// -----------------------------------------------------------------------------

const (
	tagAccount                  = quickfix.Tag(1)
	tagAvgPx                    = quickfix.Tag(6)
	tagClOrdID                  = quickfix.Tag(11)
	tagCumQty                   = quickfix.Tag(14)
	tagCurrency                 = quickfix.Tag(15)
	tagExecID                   = quickfix.Tag(17)
	tagLastPx                   = quickfix.Tag(31)
	tagLastQty                  = quickfix.Tag(32)
	tagMsgType                  = quickfix.Tag(35)
	tagOrderID                  = quickfix.Tag(37)
	tagOrderQty                 = quickfix.Tag(38)
	tagOrdStatus                = quickfix.Tag(39)
	tagOrdType                  = quickfix.Tag(40)
	tagOrigClOrdID              = quickfix.Tag(41)
	tagOrigTime                 = quickfix.Tag(42)
	tagPrice                    = quickfix.Tag(44)
	tagRefSeqNum                = quickfix.Tag(45)
	tagSenderCompID             = quickfix.Tag(49)
	tagQuantity                 = quickfix.Tag(53)
	tagSide                     = quickfix.Tag(54)
	tagSymbol                   = quickfix.Tag(55)
	tagTargetCompID             = quickfix.Tag(56)
	tagText                     = quickfix.Tag(58)
	tagTimeInForce              = quickfix.Tag(59)
	tagTransactTime             = quickfix.Tag(60)
	tagAllocID                  = quickfix.Tag(70)
	tagAllocTransType           = quickfix.Tag(71)
	tagTradeDate                = quickfix.Tag(75)
	tagCxlRejReason             = quickfix.Tag(102)
	tagOrdRejReason             = quickfix.Tag(103)
	tagSecurityDesc             = quickfix.Tag(107)
	tagTestReqID                = quickfix.Tag(112)
	tagNoRelatedSym             = quickfix.Tag(146)
	tagHeadline                 = quickfix.Tag(148)
	tagExecType                 = quickfix.Tag(150)
	tagLeavesQty                = quickfix.Tag(151)
	tagMaturityMonthYear        = quickfix.Tag(200)
	tagStrikePrice              = quickfix.Tag(202)
	tagSecurityExchange         = quickfix.Tag(207)
	tagFactor                   = quickfix.Tag(228)
	tagContractMultiplier       = quickfix.Tag(231)
	tagMDReqID                  = quickfix.Tag(262)
	tagSubscriptionRequestType  = quickfix.Tag(263)
	tagMarketDepth              = quickfix.Tag(264)
	tagMDUpdateType             = quickfix.Tag(265)
	tagAggregatedBook           = quickfix.Tag(266)
	tagNoMDEntryTypes           = quickfix.Tag(267)
	tagNoMDEntries              = quickfix.Tag(268)
	tagMDEntryType              = quickfix.Tag(269)
	tagMDEntryPx                = quickfix.Tag(270)
	tagMDEntrySize              = quickfix.Tag(271)
	tagMDReqRejReason           = quickfix.Tag(281)
	tagMDEntryPositionNo        = quickfix.Tag(290)
	tagUnderlyingSymbol         = quickfix.Tag(311)
	tagSecurityReqID            = quickfix.Tag(320)
	tagSecurityResponseID       = quickfix.Tag(322)
	tagSecurityStatusReqID      = quickfix.Tag(324)
	tagSecurityTradingStatus    = quickfix.Tag(326)
	tagTradingSessionID         = quickfix.Tag(336)
	tagTradSesStatus            = quickfix.Tag(340)
	tagRefTagID                 = quickfix.Tag(371)
	tagRefMsgType               = quickfix.Tag(372)
	tagSessionRejectReason      = quickfix.Tag(373)
	tagBusinessRejectReason     = quickfix.Tag(380)
	tagTotNoRelatedSym          = quickfix.Tag(393)
	tagCxlRejResponseTo         = quickfix.Tag(434)
	tagPartyIDSource            = quickfix.Tag(447)
	tagPartyID                  = quickfix.Tag(448)
	tagPartyRole                = quickfix.Tag(452)
	tagNoPartyIDs               = quickfix.Tag(453)
	tagCFICode                  = quickfix.Tag(461)
	tagMassCancelRequestType    = quickfix.Tag(530)
	tagMaturityDate             = quickfix.Tag(541)
	tagNoSides                  = quickfix.Tag(552)
	tagUsername                 = quickfix.Tag(553)
	tagPassword                 = quickfix.Tag(554)
	tagSecurityListRequestType  = quickfix.Tag(559)
	tagSecurityRequestResult    = quickfix.Tag(560)
	tagMinTradeVol              = quickfix.Tag(562)
	tagTradeRequestID           = quickfix.Tag(568)
	tagTradeRequestType         = quickfix.Tag(569)
	tagPreviouslyReported       = quickfix.Tag(570)
	tagTradeReportID            = quickfix.Tag(571)
	tagMassStatusReqID          = quickfix.Tag(584)
	tagMassStatusReqType        = quickfix.Tag(585)
	tagTradingSessionSubID      = quickfix.Tag(625)
	tagAllocType                = quickfix.Tag(626)
	tagNoUnderlyings            = quickfix.Tag(711)
	tagTotNumTradeReports       = quickfix.Tag(748)
	tagTrdType                  = quickfix.Tag(828)
	tagTotNumReports            = quickfix.Tag(911)
	tagLastRptRequested         = quickfix.Tag(912)
	tagStrikeCurrency           = quickfix.Tag(947)
	tagSecurityStatus           = quickfix.Tag(965)
	tagMinPriceIncrement        = quickfix.Tag(969)
	tagAggressorIndicator       = quickfix.Tag(1057)
	tagLotType                  = quickfix.Tag(1093)
	tagMaxTradeVol              = quickfix.Tag(1140)
	tagLowLimitPrice            = quickfix.Tag(1148)
	tagHighLimitPrice           = quickfix.Tag(1149)
	tagMinLotSize               = quickfix.Tag(1231)
	tagNoExecInstRules          = quickfix.Tag(1232)
	tagNoLotTypeRules           = quickfix.Tag(1234)
	tagNoOrdTypeRules           = quickfix.Tag(1237)
	tagNoTimeInForceRules       = quickfix.Tag(1239)
	tagMarketSegmentID          = quickfix.Tag(1300)
	tagMarketID                 = quickfix.Tag(1301)
	tagExecInstValue            = quickfix.Tag(1308)
	tagNoTradingSessionRules    = quickfix.Tag(1309)
	tagTickSize                 = quickfix.Tag(5023)
	tagInstrumentPricePrecision = quickfix.Tag(5514)
	tagMaxLotSize               = quickfix.Tag(5515)
	tagInstrumentSizePrecision  = quickfix.Tag(7117)
)

// -----------------------------------------------------------------------------

// Message types handled by the gateway.
const (
	MsgTypeHeartbeat             = "0"
	MsgTypeTestRequest           = "1"
	MsgTypeReject                = "3"
	MsgTypeLogout                = "5"
	MsgTypeExecutionReport       = "8"
	MsgTypeOrderCancelReject     = "9"
	MsgTypeLogon                 = "A"
	MsgTypeNews                  = "B"
	MsgTypeNewOrderSingle        = "D"
	MsgTypeOrderCancelRequest    = "F"
	MsgTypeOrderCancelReplace    = "G"
	MsgTypeOrderStatusRequest    = "H"
	MsgTypeAllocationInstruction = "J"
	MsgTypeMarketDataRequest     = "V"
	MsgTypeMarketDataSnapshot    = "W"
	MsgTypeMarketDataReject      = "Y"
	MsgTypeBusinessReject        = "j"
	MsgTypeSecurityStatusRequest = "e"
	MsgTypeSecurityStatus        = "f"
	MsgTypeTradingSessionStatus  = "h"
	MsgTypeOrderMassCancel       = "q"
	MsgTypeSecurityListRequest   = "x"
	MsgTypeSecurityList          = "y"
	MsgTypeTradeCaptureRequest   = "AD"
	MsgTypeTradeCaptureReport    = "AE"
	MsgTypeOrderMassStatus       = "AF"
)

// Execution report ExecType values.
const (
	execTypeNew         = "0"
	execTypeCanceled    = "4"
	execTypeReplaced    = "5"
	execTypeRejected    = "8"
	execTypeTrade       = "F"
	execTypeOrderStatus = "I"
)
