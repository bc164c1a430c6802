// Package realtime streams live quotes to browser clients over WebSocket.
package realtime

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"stockfolio/internal/logger"
	"stockfolio/internal/quotes"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// Message types exchanged with clients.
const (
	TypeStatus      = "status"
	TypeError       = "error"
	TypeStockUpdate = "stock_update"
	TypeSubscribe   = "subscribe_stocks"
	TypeUnsubscribe = "unsubscribe_stocks"
)

// Message is a server-to-client frame.
type Message struct {
	Type    string       `json:"type"`
	Message string       `json:"message,omitempty"`
	Data    *StockUpdate `json:"data,omitempty"`
}

// StockUpdate is the payload of a stock_update frame.
type StockUpdate struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	MarketHours   bool      `json:"market_hours"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       int64     `json:"version"`
}

// Request is a client-to-server frame.
type Request struct {
	Type    string   `json:"type"`
	Symbols []string `json:"symbols"`
}

func newStockUpdate(q quotes.Quote) *StockUpdate {
	return &StockUpdate{
		Symbol:        q.Symbol,
		Price:         q.Price.Round(4).InexactFloat64(),
		ChangePercent: q.ChangePercent.Round(2).InexactFloat64(),
		Volume:        q.Volume,
		MarketHours:   q.MarketOpen,
		Status:        q.Status(),
		Timestamp:     q.Timestamp,
		Version:       q.Version,
	}
}

// Hub upgrades HTTP requests to WebSocket connections and attaches each
// one to a feed subscription.
type Hub struct {
	feed     *quotes.Feed
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates a hub over feed. allowedOrigin "*" accepts any origin.
func NewHub(feed *quotes.Feed, allowedOrigin string) *Hub {
	return &Hub{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
		log:     logger.Named("realtime"),
		clients: make(map[*client]struct{}),
	}
}

// ServeWS godoc
// @Summary      Live quote stream
// @Description  Upgrades to a WebSocket that streams stock_update frames for subscribed symbols
// @Tags         realtime
// @Success      101
// @Router       /ws [get]
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err, "remote", c.ClientIP())
		return
	}

	cl := &client{
		hub:  h,
		conn: conn,
		sub:  h.feed.Subscribe(nil),
		send: make(chan Message, sendBuffer),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	h.log.Infow("client connected", "remote", c.ClientIP(), "clients", h.Clients())

	cl.enqueue(Message{Type: TypeStatus, Message: "Connected to stock data stream"})
	go cl.writePump()
	go cl.readPump()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		_ = cl.conn.Close()
	}
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl)
	h.mu.Unlock()
}

// client is one WebSocket connection. Only writePump writes to conn.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	sub  *quotes.Subscription
	send chan Message

	once sync.Once
	done chan struct{}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.sub.Close()
		_ = c.conn.Close()
		c.hub.remove(c)
	})
}

// enqueue hands msg to the writer, giving up if the connection is gone.
func (c *client) enqueue(msg Message) {
	select {
	case c.send <- msg:
	case <-c.done:
	}
}

func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req Request
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debugw("websocket read failed", "error", err)
			}
			return
		}
		c.handle(req)
	}
}

func (c *client) handle(req Request) {
	switch req.Type {
	case TypeSubscribe:
		c.sub.SetSymbols(req.Symbols)
		symbols := c.sub.Symbols()
		c.enqueue(Message{Type: TypeStatus, Message: fmt.Sprintf("Subscribed to %d stocks", len(symbols))})
		for _, sym := range symbols {
			if q, ok := c.hub.feed.Price(sym); ok {
				c.enqueue(Message{Type: TypeStockUpdate, Data: newStockUpdate(q)})
			}
		}
	case TypeUnsubscribe:
		c.sub.SetSymbols(nil)
		c.enqueue(Message{Type: TypeStatus, Message: "Unsubscribed from stock updates"})
	default:
		c.enqueue(Message{Type: TypeError, Message: fmt.Sprintf("unknown message type %q", req.Type)})
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	updates := c.sub.Updates()
	for {
		var msg Message
		select {
		case <-c.done:
			return
		case msg = <-c.send:
		case q, ok := <-updates:
			if !ok {
				return
			}
			msg = Message{Type: TypeStockUpdate, Data: newStockUpdate(q)}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
