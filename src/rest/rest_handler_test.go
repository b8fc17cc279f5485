package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fix-gateway/src/commands"
	"fix-gateway/src/ledger"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"
	"fix-gateway/src/sessions"

	"github.com/quickfixgo/quickfix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

type recordingSender struct {
	messages []*quickfix.Message
}

func (s *recordingSender) Send(msg *quickfix.Message, targetCompID string) error {
	s.messages = append(s.messages, msg)
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *ledger.Ledger) {
	t.Helper()

	registry := sessions.NewRegistry("REM2989", logger.NewNopLogger())
	require.NoError(t, registry.Register("ROFX", "FIXSERVER"))
	require.NoError(t, registry.SetConnected("ROFX", true))

	orders := ledger.NewLedger(logger.NewNopLogger())
	dispatcher := commands.NewDispatcher(registry, orders, &recordingSender{}, logger.NewNopLogger())
	config := &models.MConfig{Host: "localhost", Port: 8080}
	return NewHandler(config, dispatcher, logger.NewNopLogger()), orders
}

func doJSON(t *testing.T, handler *Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	return rec
}

// -----------------------------------------------------------------------------

func TestPlaceOrderEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	price := 57400.0
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/orders", &commands.MOrderCommand{
		TargetCompID: "ROFX",
		Symbol:       "RFX20Dic19",
		Side:         "Buy",
		OrdType:      "Limit",
		Quantity:     10,
		Price:        &price,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "REM2989-00000001", resp["clOrdId"])
}

func TestPlaceOrderErrorMapping(t *testing.T) {
	handler, _ := newTestHandler(t)

	// unknown counterparty
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/orders", &commands.MOrderCommand{
		TargetCompID: "BYMA", Symbol: "X", Side: "Buy", OrdType: "Limit", Quantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// invalid side
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/orders", &commands.MOrderCommand{
		TargetCompID: "ROFX", Symbol: "X", Side: "Long", OrdType: "Limit", Quantity: 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// garbage body
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString("{"))
	rec2 := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestCancelUnknownOrderMapsToNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodDelete, "/api/v1/orders/ROFX_999?target=ROFX", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderReadsLedger(t *testing.T) {
	handler, orders := newTestHandler(t)

	qty := 10.0
	orders.RecordAck(&models.MOrder{
		OrderID: "ROFX_100", ClOrdID: "REM2989-00000001", TargetCompID: "ROFX",
		Symbol: "RFX20Dic19", Side: "Buy", OrdType: "Limit", Status: "NEW", OrderQty: &qty,
	})

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/orders/ROFX_100", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.MOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "RFX20Dic19", order.Symbol)
	assert.Equal(t, "NEW", order.Status)
}

func TestMarketDataEndpointDefaultsToSubscribe(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/marketdata", &commands.MMarketDataCommand{
		TargetCompID: "ROFX",
		Symbols:      []string{"RFX20Dic19"},
		Entries:      []string{"0", "1"},
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["requestId"])
}

func TestHealthz(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
