package hub

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"fix-gateway/src/interfaces"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub fans every normalized event out to all live websocket subscribers.
// Each event is serialized exactly once; per-subscriber queues preserve FIFO
// order and isolate slow consumers: a subscriber whose queue is full at
// publish time is dropped like a disconnect, the publisher never blocks.
// -----------------------------------------------------------------------------

// wsConn is the subset of *websocket.Conn the hub uses. Tests substitute it.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type subscriber struct {
	id   string
	conn wsConn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func (s *subscriber) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		// close races with an in-flight write are expected during teardown
		_ = s.conn.Close()
	})
}

// -----------------------------------------------------------------------------

type Hub struct {
	name       string
	config     *models.MHubConfig
	logger     *logger.Logger
	serializer interfaces.ISerializer
	upgrader   websocket.Upgrader

	mu          sync.RWMutex
	subscribers map[string]*subscriber

	server    *http.Server
	connected bool
}

// -----------------------------------------------------------------------------

// NewHub creates a hub serving the configured websocket endpoint.
func NewHub(config *models.MHubConfig, logger *logger.Logger, serializer interfaces.ISerializer) *Hub {
	return &Hub{
		name:       "hub",
		config:     config,
		logger:     logger,
		serializer: serializer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subscribers: map[string]*subscriber{},
	}
}

// -----------------------------------------------------------------------------

// OnEvent serializes the event once and enqueues it to every subscriber.
// Saturated subscribers are dropped after the fan-out pass.
func (h *Hub) OnEvent(event *models.MEvent) {
	data, err := h.serializer.Marshal(event)
	if err != nil {
		h.logger.Error("%s : failed to serialize %s event: %v", h.name, event.Type, err)
		return
	}

	var stalled []*subscriber

	h.mu.RLock()
	for _, sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			stalled = append(stalled, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range stalled {
		h.logger.Warning("%s : subscriber %s queue full, dropping", h.name, sub.id)
		h.remove(sub.id)
	}
}

// -----------------------------------------------------------------------------

// Subscribe registers a connection and starts its writer. Returns the
// subscriber ID for later Unsubscribe.
func (h *Hub) Subscribe(conn wsConn) string {
	sub := &subscriber{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.config.QueueSize),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	h.mu.Unlock()

	go h.writePump(sub)

	h.logger.Info("%s : subscriber %s connected (%d total)", h.name, sub.id, h.SubscriberCount())
	return sub.id
}

// Unsubscribe removes a subscriber and closes its connection.
func (h *Hub) Unsubscribe(id string) {
	h.remove(id)
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		sub.close()
		h.logger.Info("%s : subscriber %s disconnected", h.name, id)
	}
}

// SubscriberCount returns the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// -----------------------------------------------------------------------------

// writePump drains one subscriber's queue in order. A delivery failure is an
// implicit unsubscribe.
func (h *Hub) writePump(sub *subscriber) {
	for {
		select {
		case data := <-sub.send:
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Warning("%s : write to subscriber %s failed: %v", h.name, sub.id, err)
				h.remove(sub.id)
				return
			}
		case <-sub.done:
			return
		}
	}
}

// -----------------------------------------------------------------------------

// ServeWS upgrades an HTTP request into a subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warning("%s : upgrade failed: %v", h.name, err)
		return
	}
	id := h.Subscribe(conn)

	// drain control frames; a read error means the peer went away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.Unsubscribe(id)
				return
			}
		}
	}()
}

// -----------------------------------------------------------------------------

// Connect starts the websocket endpoint.
func (h *Hub) Connect() error {
	h.mu.Lock()
	if h.connected {
		h.mu.Unlock()
		return nil
	}

	path := h.config.Path
	if path == "" {
		path = "/ws"
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, h.ServeWS)

	h.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", h.config.Host, h.config.Port),
		Handler: mux,
	}
	h.connected = true
	h.mu.Unlock()

	go func() {
		h.logger.Info("%s : websocket endpoint listening on %s%s", h.name, h.server.Addr, path)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("%s : server failed: %v", h.name, err)
		}
	}()
	return nil
}

// Disconnect stops the endpoint and drops every subscriber.
func (h *Hub) Disconnect() error {
	h.mu.Lock()
	wasConnected := h.connected
	h.connected = false
	server := h.server
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.subscribers = map[string]*subscriber{}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	if wasConnected && server != nil {
		return server.Shutdown(context.Background())
	}
	return nil
}

// IsConnected reports whether the endpoint is serving.
func (h *Hub) IsConnected() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.connected
}
