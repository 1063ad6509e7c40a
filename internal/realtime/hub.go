package realtime

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"macau-pulse/internal/logs"
	"macau-pulse/internal/metrics"
)

// Push topics. The poller publishes parking and weather on its own
// cadence; border and flight frames are subscription targets reserved
// for gate-queue pushes.
const (
	TopicParking = "parking"
	TopicWeather = "weather"
	TopicBorder  = "border"
	TopicFlight  = "flight"
)

// Message is the wire frame pushed to subscribed clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// control is what clients send to narrow their subscription. A client
// that never sends one receives every topic.
type control struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Topic  string `json:"topic"`
}

type client struct {
	conn *websocket.Conn
	send chan Message

	mu     sync.Mutex
	topics map[string]bool
}

func (c *client) wants(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.topics) == 0 {
		return true
	}
	return c.topics[topic]
}

// Hub fans realtime feed updates out to websocket clients. Publishing
// never blocks: a client whose send buffer is full skips the frame and
// catches up on the next one.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	logger   *logs.Logger
	metrics  *metrics.Registry
}

func NewHub(logger *logs.Logger, metricsRegistry *metrics.Registry) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			// The dashboard is served from a different origin than the
			// aggregation service.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  logger,
		metrics: metricsRegistry,
	}
}

// ServeHTTP upgrades the request and holds the connection until the
// client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed: " + err.Error())
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan Message, 16),
		topics: make(map[string]bool),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.Inc(metrics.RealtimeClientsConnected)
	h.logger.Debug("realtime client connected")

	go h.writePump(c)
	h.readPump(c)
}

// Publish sends one update to every client subscribed to the topic.
func (h *Hub) Publish(topic string, data any) {
	msg := Message{Type: topic, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !c.wants(topic) {
			continue
		}
		select {
		case c.send <- msg:
			h.metrics.Inc(metrics.RealtimePushesTotal)
		default:
			// Slow consumer, drop this frame for them.
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) readPump(c *client) {
	defer h.drop(c)

	for {
		var ctrl control
		if err := c.conn.ReadJSON(&ctrl); err != nil {
			return
		}

		c.mu.Lock()
		switch ctrl.Action {
		case "subscribe":
			c.topics[ctrl.Topic] = true
		case "unsubscribe":
			delete(c.topics, ctrl.Topic)
		}
		c.mu.Unlock()
	}
}

func (h *Hub) writePump(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, present := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if present {
		h.metrics.Add(metrics.RealtimeClientsConnected, -1)
		h.logger.Debug("realtime client disconnected")
	}

	close(c.send)
	c.conn.Close()
}
