package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/config"
)

// Message types. Clients send subscribe, unsubscribe and ping; the server
// sends ack, pong, event and error.
const (
	MessageSubscribe   = "subscribe"
	MessageUnsubscribe = "unsubscribe"
	MessagePing        = "ping"
	MessagePong        = "pong"
	MessageAck         = "ack"
	MessageEvent       = "event"
	MessageError       = "error"
)

const (
	sendBuffer          = 64
	defaultPingInterval = 30 * time.Second
	defaultPongTimeout  = 10 * time.Second
)

// Message is one WebSocket frame in either direction.
type Message struct {
	Type      string   `json:"type"`
	ID        string   `json:"id,omitempty"`
	Channel   string   `json:"channel,omitempty"`
	Channels  []string `json:"channels,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Payload   any      `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS middleware.
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu   sync.Mutex
	subs map[string]bool
}

// handleWebSocket upgrades the request and serves the client until it
// disconnects or the hub stops.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, CodeUnavailable, "websocket hub not running")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err, "request_id", requestID(r))
		return
	}

	c := &client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		subs: make(map[string]bool),
	}
	s.hub.add(c)

	timing := newWSTiming(s.wsCfg)
	go c.writeLoop(timing)
	go c.readLoop(s.wsCfg.MaxMessageSize, timing)
}

type wsTiming struct {
	ping, pong time.Duration
}

func newWSTiming(cfg config.WebSocketConfig) wsTiming {
	t := wsTiming{
		ping: time.Duration(cfg.PingInterval) * time.Second,
		pong: time.Duration(cfg.PongTimeout) * time.Second,
	}
	if t.ping <= 0 {
		t.ping = defaultPingInterval
	}
	if t.pong <= 0 {
		t.pong = defaultPongTimeout
	}
	return t
}

func (c *client) readLoop(maxSize int, t wsTiming) {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	if maxSize > 0 {
		c.conn.SetReadLimit(int64(maxSize))
	}
	extend := func() error { return c.conn.SetReadDeadline(time.Now().Add(t.ping + t.pong)) }
	//nolint:errcheck // a failed deadline surfaces as a read error
	extend()
	c.conn.SetPongHandler(func(string) error { return extend() })

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", "error", err)
			}
			return
		}
		//nolint:errcheck // a failed deadline surfaces as a read error
		extend()
		c.handle(data)
	}
}

func (c *client) writeLoop(t wsTiming) {
	ticker := time.NewTicker(t.ping)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			//nolint:errcheck // a failed deadline surfaces as a write error
			c.conn.SetWriteDeadline(time.Now().Add(t.pong))
			if !ok {
				//nolint:errcheck // connection is closing anyway
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			//nolint:errcheck // a failed deadline surfaces as a write error
			c.conn.SetWriteDeadline(time.Now().Add(t.pong))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) handle(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reply(Message{Type: MessageError, Payload: errorPayload("invalid JSON message")})
		return
	}

	switch msg.Type {
	case MessageSubscribe:
		c.subscribe(msg)
	case MessageUnsubscribe:
		c.mu.Lock()
		for _, ch := range msg.Channels {
			delete(c.subs, ch)
		}
		c.mu.Unlock()
		c.reply(Message{Type: MessageAck, ID: msg.ID, Channels: msg.Channels})
	case MessagePing:
		c.reply(Message{Type: MessagePong, ID: msg.ID})
	default:
		c.reply(Message{Type: MessageError, ID: msg.ID, Payload: errorPayload("unknown message type: " + msg.Type)})
	}
}

// subscribe adds every channel in msg or, if any is unknown, none.
func (c *client) subscribe(msg Message) {
	for _, ch := range msg.Channels {
		if !knownChannels[ch] {
			c.reply(Message{Type: MessageError, ID: msg.ID, Payload: errorPayload("unknown channel: " + ch)})
			return
		}
	}

	c.mu.Lock()
	replay := false
	for _, ch := range msg.Channels {
		if ch == ChannelComponentState && !c.subs[ch] {
			replay = true
		}
		c.subs[ch] = true
	}
	c.mu.Unlock()

	c.reply(Message{Type: MessageAck, ID: msg.ID, Channels: msg.Channels})
	if replay {
		c.hub.replayStates(c)
	}
}

func (c *client) subscribed(channel string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subs[channel]
}

func (c *client) reply(msg Message) {
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.hub.deliver(c, data)
}

// offer queues data without blocking. The caller holds the hub lock, so
// send is open.
func (c *client) offer(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func errorPayload(message string) map[string]string {
	return map[string]string{"message": message}
}
