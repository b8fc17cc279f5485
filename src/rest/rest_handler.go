package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fix-gateway/src/commands"
	"fix-gateway/src/errs"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"

	"github.com/gorilla/mux"
)

// -----------------------------------------------------------------------------
// Handler exposes the command dispatcher over HTTP. Every mutating endpoint
// answers with the minted request or client order ID so callers can correlate
// the asynchronous events arriving on the hub.
// -----------------------------------------------------------------------------

type Handler struct {
	name       string
	logger     *logger.Logger
	config     *models.MConfig
	dispatcher *commands.Dispatcher
	server     *http.Server
}

// -----------------------------------------------------------------------------

func NewHandler(config *models.MConfig, dispatcher *commands.Dispatcher, logger *logger.Logger) *Handler {
	return &Handler{
		name:       "rest",
		logger:     logger,
		config:     config,
		dispatcher: dispatcher,
	}
}

// -----------------------------------------------------------------------------

// Router builds the route table. Split out from Start so tests can exercise
// the handlers with httptest.
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/orders", h.placeOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{orderId}", h.getOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}", h.replaceOrder).Methods(http.MethodPut)
	api.HandleFunc("/orders/{orderId}", h.cancelOrder).Methods(http.MethodDelete)
	api.HandleFunc("/orders/{orderId}/status", h.orderStatus).Methods(http.MethodPost)
	api.HandleFunc("/orders:mass-status", h.massStatus).Methods(http.MethodPost)
	api.HandleFunc("/orders:mass-cancel", h.massCancel).Methods(http.MethodPost)

	api.HandleFunc("/marketdata", h.marketData).Methods(http.MethodPost)
	api.HandleFunc("/securities", h.securityList).Methods(http.MethodPost)
	api.HandleFunc("/securities/{symbol}/status", h.securityStatus).Methods(http.MethodPost)
	api.HandleFunc("/trades", h.tradeCapture).Methods(http.MethodPost)
	api.HandleFunc("/allocations", h.allocation).Methods(http.MethodPost)

	router.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	return router
}

// -----------------------------------------------------------------------------
// Orders
// -----------------------------------------------------------------------------

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var cmd commands.MOrderCommand
	if !h.decodeBody(w, r, &cmd) {
		return
	}
	clOrdID, err := h.dispatcher.PlaceOrder(&cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"clOrdId": clOrdID})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.dispatcher.Lookup(mux.Vars(r)["orderId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

type replaceRequest struct {
	TargetCompID string   `json:"targetCompId"`
	Quantity     *float64 `json:"quantity,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}

func (h *Handler) replaceOrder(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	clOrdID, err := h.dispatcher.ReplaceOrder(req.TargetCompID, mux.Vars(r)["orderId"], req.Quantity, req.Price)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"clOrdId": clOrdID})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	clOrdID, err := h.dispatcher.CancelOrder(target, mux.Vars(r)["orderId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"clOrdId": clOrdID})
}

func (h *Handler) orderStatus(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if err := h.dispatcher.OrderStatus(target, mux.Vars(r)["orderId"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "requested"})
}

type sessionRequest struct {
	TargetCompID    string `json:"targetCompId"`
	MarketSegmentID string `json:"marketSegmentId,omitempty"`
}

func (h *Handler) massStatus(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	requestID, err := h.dispatcher.MassStatus(req.TargetCompID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"requestId": requestID})
}

func (h *Handler) massCancel(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	clOrdID, err := h.dispatcher.MassCancel(req.TargetCompID, req.MarketSegmentID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"clOrdId": clOrdID})
}

// -----------------------------------------------------------------------------
// Market and reference data
// -----------------------------------------------------------------------------

func (h *Handler) marketData(w http.ResponseWriter, r *http.Request) {
	var cmd commands.MMarketDataCommand
	if !h.decodeBody(w, r, &cmd) {
		return
	}
	if cmd.Subscription == "" {
		cmd.Subscription = commands.SubscriptionSubscribe
	}
	requestID, err := h.dispatcher.SubscribeMarketData(&cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"requestId": requestID})
}

type securityListRequest struct {
	TargetCompID string `json:"targetCompId"`
	Criteria     string `json:"criteria"`
	Symbol       string `json:"symbol,omitempty"`
	CFICode      string `json:"cfiCode,omitempty"`
	Subscription string `json:"subscription,omitempty"`
}

func (h *Handler) securityList(w http.ResponseWriter, r *http.Request) {
	var req securityListRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.Subscription == "" {
		req.Subscription = commands.SubscriptionSnapshot
	}
	requestID, err := h.dispatcher.SecurityList(req.TargetCompID, req.Criteria, req.Symbol, req.CFICode, req.Subscription)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"requestId": requestID})
}

func (h *Handler) securityStatus(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	requestID, err := h.dispatcher.SecurityStatus(req.TargetCompID, mux.Vars(r)["symbol"], commands.SubscriptionSubscribe)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"requestId": requestID})
}

type tradeCaptureRequest struct {
	TargetCompID string `json:"targetCompId"`
	Symbol       string `json:"symbol,omitempty"`
}

func (h *Handler) tradeCapture(w http.ResponseWriter, r *http.Request) {
	var req tradeCaptureRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	requestID, err := h.dispatcher.TradeCapture(req.TargetCompID, req.Symbol)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"requestId": requestID})
}

type allocationRequest struct {
	TargetCompID string  `json:"targetCompId"`
	Symbol       string  `json:"symbol"`
	Side         string  `json:"side"`
	TradeDate    string  `json:"tradeDate"`
	Quantity     float64 `json:"quantity"`
}

func (h *Handler) allocation(w http.ResponseWriter, r *http.Request) {
	var req allocationRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	allocID, err := h.dispatcher.Allocation(req.TargetCompID, req.Symbol, req.Side, req.TradeDate, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"allocId": allocID})
}

// -----------------------------------------------------------------------------

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// -----------------------------------------------------------------------------
// Plumbing
// -----------------------------------------------------------------------------

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("%s : failed to encode response: %v", h.name, err)
	}
}

// writeError maps dispatcher errors onto HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var invalid *errs.InvalidCommandError
	var failure *errs.SendFailure
	switch {
	case errors.Is(err, errs.ErrUnknownSession), errors.Is(err, errs.ErrUnknownOrder):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrNotConnected):
		status = http.StatusServiceUnavailable
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
	case errors.As(err, &failure):
		status = http.StatusBadGateway
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// -----------------------------------------------------------------------------

// Start serves the command API in the background.
func (h *Handler) Start() {
	h.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", h.config.Host, h.config.Port),
		Handler: h.Router(),
	}
	go func() {
		h.logger.Info("%s : command API listening on %s", h.name, h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("%s : server failed: %v", h.name, err)
		}
	}()
}

// Stop shuts the command API down gracefully.
func (h *Handler) Stop(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}
