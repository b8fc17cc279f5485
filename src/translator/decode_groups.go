package translator

import (
	"fmt"
	"strings"

	"fix-gateway/src/models"

	"github.com/quickfixgo/quickfix"
)

// -----------------------------------------------------------------------------
// Decoders for the group-bearing messages: market data snapshots, security
// lists and trade capture reports. Group repetitions are decoded fail-soft:
// a bad entry is skipped with a diagnostic, the rest of the message survives.
// -----------------------------------------------------------------------------

// Entry type membership for the conditional market data fields.
const (
	mdEntryTypesWithPrice    = "01245678w"
	mdEntryTypesWithSize     = "012BCx"
	mdEntryTypesWithPosition = "01"
)

func mdEntriesGroup() *quickfix.RepeatingGroup {
	return quickfix.NewRepeatingGroup(tagNoMDEntries, quickfix.GroupTemplate{
		quickfix.GroupElement(tagMDEntryType),
		quickfix.GroupElement(tagMDEntryPx),
		quickfix.GroupElement(tagMDEntrySize),
		quickfix.GroupElement(tagMDEntryPositionNo),
	})
}

func (t *Translator) decodeMarketDataSnapshot(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	symbol, err := reqString(MsgTypeMarketDataSnapshot, &msg.Body, tagSymbol)
	if err != nil {
		return nil, err
	}
	marketID, _ := optString(&msg.Body, tagSecurityExchange)

	book := &models.MMarketData{
		BI: []models.MMarketDataEntry{},
		OF: []models.MMarketDataEntry{},
	}

	entries := mdEntriesGroup()
	if gerr := msg.Body.GetGroup(entries); gerr != nil {
		return nil, fmt.Errorf("market data entries for %s: %v", symbol, gerr)
	}

	for i := 0; i < entries.Len(); i++ {
		entry := entries.Get(i)

		entryType, ok := optString(entry, tagMDEntryType)
		if !ok {
			t.logger.Warning("market data entry %d for %s without entry type, skipping", i, symbol)
			continue
		}

		md := models.MMarketDataEntry{}
		if strings.Contains(mdEntryTypesWithPrice, entryType) {
			md.Price = optFloat(entry, tagMDEntryPx)
		}
		if strings.Contains(mdEntryTypesWithSize, entryType) {
			md.Size = optFloat(entry, tagMDEntrySize)
		}
		if strings.Contains(mdEntryTypesWithPosition, entryType) {
			md.Position = optInt(entry, tagMDEntryPositionNo)
		}

		switch entryType {
		case "0":
			book.BI = append(book.BI, md)
		case "1":
			book.OF = append(book.OF, md)
		case "B":
			tv := md
			book.TV = &tv
		}
	}

	return &models.MEvent{
		Type:         models.EventMarketData,
		SenderCompID: senderCompID,
		InstrumentID: &models.MInstrumentID{MarketID: marketID, Symbol: symbol},
		MarketData:   book,
	}, nil
}

// -----------------------------------------------------------------------------
// Security list
// -----------------------------------------------------------------------------

func securityListGroups() (related, underlyings, lotRules, sessionRules, ordTypeRules, tifRules, execInstRules *quickfix.RepeatingGroup) {
	ordTypeRules = quickfix.NewRepeatingGroup(tagNoOrdTypeRules, quickfix.GroupTemplate{
		quickfix.GroupElement(tagOrdType),
	})
	tifRules = quickfix.NewRepeatingGroup(tagNoTimeInForceRules, quickfix.GroupTemplate{
		quickfix.GroupElement(tagTimeInForce),
	})
	execInstRules = quickfix.NewRepeatingGroup(tagNoExecInstRules, quickfix.GroupTemplate{
		quickfix.GroupElement(tagExecInstValue),
	})

	underlyings = quickfix.NewRepeatingGroup(tagNoUnderlyings, quickfix.GroupTemplate{
		quickfix.GroupElement(tagUnderlyingSymbol),
	})
	lotRules = quickfix.NewRepeatingGroup(tagNoLotTypeRules, quickfix.GroupTemplate{
		quickfix.GroupElement(tagLotType),
		quickfix.GroupElement(tagMinLotSize),
		quickfix.GroupElement(tagMaxLotSize),
	})
	sessionRules = quickfix.NewRepeatingGroup(tagNoTradingSessionRules, quickfix.GroupTemplate{
		quickfix.GroupElement(tagTradingSessionID),
		ordTypeRules,
		tifRules,
		execInstRules,
	})

	related = quickfix.NewRepeatingGroup(tagNoRelatedSym, quickfix.GroupTemplate{
		quickfix.GroupElement(tagSymbol),
		quickfix.GroupElement(tagSecurityDesc),
		quickfix.GroupElement(tagFactor),
		quickfix.GroupElement(tagCFICode),
		quickfix.GroupElement(tagContractMultiplier),
		quickfix.GroupElement(tagMaturityMonthYear),
		quickfix.GroupElement(tagMaturityDate),
		quickfix.GroupElement(tagStrikePrice),
		quickfix.GroupElement(tagStrikeCurrency),
		quickfix.GroupElement(tagMinPriceIncrement),
		quickfix.GroupElement(tagTickSize),
		quickfix.GroupElement(tagInstrumentPricePrecision),
		quickfix.GroupElement(tagInstrumentSizePrecision),
		quickfix.GroupElement(tagCurrency),
		underlyings,
		quickfix.GroupElement(tagMaxTradeVol),
		quickfix.GroupElement(tagMinTradeVol),
		lotRules,
		quickfix.GroupElement(tagLowLimitPrice),
		quickfix.GroupElement(tagHighLimitPrice),
		sessionRules,
	})
	return
}

func (t *Translator) decodeSecurityList(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	reqID, err := reqString(MsgTypeSecurityList, &msg.Body, tagSecurityReqID)
	if err != nil {
		return nil, err
	}

	list := &models.MSecurityList{
		SecurityReqID:           reqID,
		SecurityRequestResult:   optInt(&msg.Body, tagSecurityRequestResult),
		SecurityListRequestType: optInt(&msg.Body, tagSecurityListRequestType),
		TotNoRelatedSym:         optInt(&msg.Body, tagTotNoRelatedSym),
		Tickers:                 []models.MTicker{},
	}
	if v, ok := optString(&msg.Body, tagSecurityResponseID); ok {
		list.SecurityResponseID = v
	}
	if v, ok := optString(&msg.Body, tagMarketSegmentID); ok {
		list.MarketSegmentID = v
	}

	related, underlyings, lotRules, sessionRules, ordTypeRules, tifRules, execInstRules := securityListGroups()
	if gerr := msg.Body.GetGroup(related); gerr != nil {
		return nil, fmt.Errorf("security list symbols for %s: %v", reqID, gerr)
	}

	for i := 0; i < related.Len(); i++ {
		sym := related.Get(i)

		symbol, ok := optString(sym, tagSymbol)
		if !ok {
			t.logger.Warning("security list entry %d for %s without symbol, skipping", i, reqID)
			continue
		}

		ticker := models.MTicker{
			Symbol:             symbol,
			Factor:             optFloat(sym, tagFactor),
			ContractMultiplier: optFloat(sym, tagContractMultiplier),
			StrikePrice:        optFloat(sym, tagStrikePrice),
			MinPriceIncrement:  optFloat(sym, tagMinPriceIncrement),
			MaxTradeVol:        optFloat(sym, tagMaxTradeVol),
			MinTradeVol:        optFloat(sym, tagMinTradeVol),
			LowLimitPrice:      optFloat(sym, tagLowLimitPrice),
			HighLimitPrice:     optFloat(sym, tagHighLimitPrice),
		}
		if v, ok := optString(sym, tagSecurityDesc); ok {
			ticker.SecurityDesc = v
		}
		if v, ok := optString(sym, tagCFICode); ok {
			ticker.CFICode = v
		}
		if v, ok := optString(sym, tagCurrency); ok {
			ticker.Currency = v
		}
		if v, ok := optString(sym, tagStrikeCurrency); ok {
			ticker.StrikeCurrency = v
		}
		if v, ok := optString(sym, tagMaturityMonthYear); ok {
			ticker.MaturityMonthYear = v
		}
		if v, ok := optString(sym, tagMaturityDate); ok {
			ticker.MaturityDate = v
		}
		if v, ok := optString(sym, tagTickSize); ok {
			ticker.TickSize = v
		}
		if v, ok := optString(sym, tagInstrumentPricePrecision); ok {
			ticker.InstrumentPricePrecision = v
		}
		if v, ok := optString(sym, tagInstrumentSizePrecision); ok {
			ticker.InstrumentSizePrecision = v
		}

		if gerr := sym.GetGroup(underlyings); gerr == nil {
			for u := 0; u < underlyings.Len(); u++ {
				if v, ok := optString(underlyings.Get(u), tagUnderlyingSymbol); ok {
					ticker.UnderlyingSymbol = v
				}
			}
		}

		if gerr := sym.GetGroup(lotRules); gerr == nil {
			for l := 0; l < lotRules.Len(); l++ {
				rule := lotRules.Get(l)
				if v, ok := optString(rule, tagLotType); ok {
					ticker.LotType = v
				}
				ticker.MinLotSize = optFloat(rule, tagMinLotSize)
				if v, ok := optString(rule, tagMaxLotSize); ok {
					ticker.MaxLotSize = v
				}
			}
		}

		if gerr := sym.GetGroup(sessionRules); gerr == nil {
			for s := 0; s < sessionRules.Len(); s++ {
				rule := sessionRules.Get(s)
				if v, ok := optString(rule, tagTradingSessionID); ok {
					ticker.TradingSessionID = v
				}

				if oerr := rule.GetGroup(ordTypeRules); oerr == nil {
					for o := 0; o < ordTypeRules.Len(); o++ {
						if v, ok := optString(ordTypeRules.Get(o), tagOrdType); ok {
							ticker.OrdTypes = append(ticker.OrdTypes, OrdTypeName(v))
						}
					}
				}
				if terr := rule.GetGroup(tifRules); terr == nil {
					for f := 0; f < tifRules.Len(); f++ {
						if v, ok := optString(tifRules.Get(f), tagTimeInForce); ok {
							ticker.TimeInForce = append(ticker.TimeInForce, TimeInForceName(v))
						}
					}
				}
				if eerr := rule.GetGroup(execInstRules); eerr == nil {
					for e := 0; e < execInstRules.Len(); e++ {
						if v, ok := optString(execInstRules.Get(e), tagExecInstValue); ok {
							ticker.ExecInstValues = append(ticker.ExecInstValues, ExecInstName(v))
						}
					}
				}
			}
		}

		list.Tickers = append(list.Tickers, ticker)
	}

	return &models.MEvent{
		Type:         models.EventSecurityList,
		SenderCompID: senderCompID,
		SecurityList: list,
	}, nil
}

// -----------------------------------------------------------------------------
// Trade capture
// -----------------------------------------------------------------------------

func tradeSidesGroups() (sides, parties *quickfix.RepeatingGroup) {
	parties = quickfix.NewRepeatingGroup(tagNoPartyIDs, quickfix.GroupTemplate{
		quickfix.GroupElement(tagPartyID),
		quickfix.GroupElement(tagPartyIDSource),
		quickfix.GroupElement(tagPartyRole),
	})
	sides = quickfix.NewRepeatingGroup(tagNoSides, quickfix.GroupTemplate{
		quickfix.GroupElement(tagSide),
		quickfix.GroupElement(tagAccount),
		quickfix.GroupElement(tagOrderID),
		parties,
		quickfix.GroupElement(tagAggressorIndicator),
	})
	return
}

// decodeTradeCaptureReport merges one AE into its batch. The event is only
// emitted once the batch is complete, carrying every merged report.
func (t *Translator) decodeTradeCaptureReport(msg *quickfix.Message, senderCompID string) (*models.MEvent, error) {
	requestID, err := reqString(MsgTypeTradeCaptureReport, &msg.Body, tagTradeRequestID)
	if err != nil {
		return nil, err
	}
	reportID, err := reqString(MsgTypeTradeCaptureReport, &msg.Body, tagTradeReportID)
	if err != nil {
		return nil, err
	}
	symbol, err := reqString(MsgTypeTradeCaptureReport, &msg.Body, tagSymbol)
	if err != nil {
		return nil, err
	}

	report := &models.MTradeReport{
		Symbol:  symbol,
		LastPx:  optFloat(&msg.Body, tagLastPx),
		LastQty: optFloat(&msg.Body, tagLastQty),
		Sides:   []models.MTradeSide{},
	}
	if v, ok := optString(&msg.Body, tagTransactTime); ok {
		report.TransactTime = v
	}
	if v, ok := optString(&msg.Body, tagPreviouslyReported); ok {
		report.PreviouslyReported = v
	}
	if v, ok := optString(&msg.Body, tagExecID); ok {
		report.ExecID = v
	}
	if v, ok := optString(&msg.Body, tagSecurityExchange); ok {
		report.SecurityExchange = v
	}
	if v, ok := optString(&msg.Body, tagCFICode); ok {
		report.CFICode = v
	}
	if v, ok := optString(&msg.Body, tagTrdType); ok {
		report.TrdType = v
	}

	sides, parties := tradeSidesGroups()
	if gerr := msg.Body.GetGroup(sides); gerr != nil {
		t.logger.Warning("trade report %s without sides group: %v", reportID, gerr)
	}
	for i := 0; i < sides.Len(); i++ {
		entry := sides.Get(i)

		sideCode, ok := optString(entry, tagSide)
		if !ok {
			t.logger.Warning("trade report %s side %d without side, skipping", reportID, i)
			continue
		}
		side := models.MTradeSide{Side: SideName(sideCode)}
		if v, ok := optString(entry, tagAccount); ok {
			side.Account = v
		}
		if v, ok := optString(entry, tagOrderID); ok {
			side.OrderID = v
		}
		if v, ok := optString(entry, tagAggressorIndicator); ok {
			side.AggressorIndicator = v
		}

		if perr := entry.GetGroup(parties); perr == nil && parties.Len() > 0 {
			side.Parties = map[string]models.MParty{}
			for p := 0; p < parties.Len(); p++ {
				party := parties.Get(p)
				partyID, ok := optString(party, tagPartyID)
				if !ok {
					continue
				}
				source, _ := optString(party, tagPartyIDSource)
				role, _ := optString(party, tagPartyRole)
				side.Parties[partyID] = models.MParty{PartyIDSource: source, PartyRole: role}
			}
		}

		report.Sides = append(report.Sides, side)
	}

	totNum := 0
	if v := optInt(&msg.Body, tagTotNumTradeReports); v != nil {
		totNum = *v
	}
	last, _ := optString(&msg.Body, tagLastRptRequested)

	batch := t.tradeReports.Merge(requestID, reportID, totNum, last == "Y", report)
	if !batch.Complete {
		return nil, nil
	}

	return &models.MEvent{
		Type:         models.EventTradeCapture,
		SenderCompID: senderCompID,
		TradeCapture: batch,
	}, nil
}
