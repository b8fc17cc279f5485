package serializers

import (
	"testing"

	"fix-gateway/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *models.MEvent {
	price := 57400.0
	return &models.MEvent{
		Type:         models.EventOrderReport,
		SenderCompID: "ROFX",
		OrderReport: &models.MOrderReport{
			AccountID:    &models.MAccountID{ID: "REM2989"},
			ClOrdID:      "REM2989-00000001",
			OrderID:      "ROFX_100",
			Status:       "NEW",
			Side:         "Buy",
			Price:        &price,
			InstrumentID: &models.MInstrumentID{MarketID: "ROFX", Symbol: "RFX20Dic19"},
		},
	}
}

func TestJSONSerializerEnvelopeKeys(t *testing.T) {
	data, err := NewJSONSerializer().Marshal(sampleEvent())
	require.NoError(t, err)

	payload := string(data)
	assert.Contains(t, payload, `"orderReport"`)
	assert.Contains(t, payload, `"clOrdId":"REM2989-00000001"`)
	assert.Contains(t, payload, `"instrumentId":{"marketId":"ROFX","symbol":"RFX20Dic19"}`)
	assert.Contains(t, payload, `"accountId":{"id":"REM2989"}`)
	// absent optional fields stay off the wire
	assert.NotContains(t, payload, "avgPx")
}

func TestBinSerializerRoundTrip(t *testing.T) {
	data, err := NewBinSerializer().Marshal(sampleEvent())
	require.NoError(t, err)

	var out models.MEvent
	require.NoError(t, NewBinSerializer().Unmarshal(data, &out))
	assert.Equal(t, "ROFX", out.SenderCompID)
	require.NotNil(t, out.OrderReport)
	assert.Equal(t, "ROFX_100", out.OrderReport.OrderID)
}
