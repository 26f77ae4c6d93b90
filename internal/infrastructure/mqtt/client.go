package mqtt

import (
	"context"
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/config"
)

// Logger receives handler failures and connection loss.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// MessageHandler handles one run request or other inbound message. It is
// called on a paho goroutine; a returned error is only logged.
type MessageHandler func(topic string, payload []byte) error

type subscription struct {
	topic   string
	qos     byte
	handler MessageHandler
}

// Client is the host's broker session. It owns the node's retained status
// topic and re-registers run request handlers after a reconnect.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig
	node   string

	// publishTimeout bounds how long a publish or subscribe waits for the
	// broker. Zero uses defaultPublishTimeout.
	publishTimeout time.Duration

	subscriptions map[string]subscription
	subMu         sync.RWMutex

	connected bool
	connMu    sync.RWMutex

	onConnect    func()
	onDisconnect func(err error)
	callbackMu   sync.RWMutex

	logger   Logger
	loggerMu sync.RWMutex
}

// Connect opens a session for node. The broker is told to mark the node
// offline if the session drops without Close.
//
// Returns ErrConnectionFailed if the broker does not accept the session
// within the connect timeout.
func Connect(cfg config.MQTTConfig, node string) (*Client, error) {
	opts := buildClientOptions(cfg)
	configureLWT(opts, node, cfg.Broker.ClientID)

	c := &Client{
		cfg:           cfg,
		node:          node,
		subscriptions: make(map[string]subscription),
	}
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) { c.handleConnect() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.handleDisconnect(err) })

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// handleConnect may not have run yet.
	c.setConnected(true)
	return c, nil
}

// Node returns the node identity the client publishes for.
func (c *Client) Node() string { return c.node }

func (c *Client) handleConnect() {
	c.setConnected(true)
	c.restoreSubscriptions()
	c.announce("online", "")

	c.callbackMu.RLock()
	callback := c.onConnect
	c.callbackMu.RUnlock()
	if callback != nil {
		callback()
	}
}

func (c *Client) handleDisconnect(err error) {
	c.setConnected(false)
	if logger := c.getLogger(); logger != nil {
		logger.Warn("broker session lost", "node", c.node, "error", err)
	}

	c.callbackMu.RLock()
	callback := c.onDisconnect
	c.callbackMu.RUnlock()
	if callback != nil {
		callback(err)
	}
}

func (c *Client) restoreSubscriptions() {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	for _, sub := range c.subscriptions {
		c.client.Subscribe(sub.topic, sub.qos, c.wrapHandler(sub.handler))
	}
}

// announce publishes the node status, retained, without waiting.
func (c *Client) announce(status, reason string) pahomqtt.Token {
	return c.client.Publish(Topics{}.SystemStatus(c.node), byte(c.cfg.QoS), true,
		buildStatusPayload(status, c.node, c.cfg.Broker.ClientID, reason))
}

// Close marks the node offline and ends the session.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	if c.IsConnected() {
		if err := awaitToken(c.announce("offline", "graceful_shutdown"), c.ackTimeout(), ErrPublishFailed); err != nil {
			if logger := c.getLogger(); logger != nil {
				logger.Warn("offline status not acknowledged", "node", c.node, "error", err)
			}
		}
	}
	c.client.Disconnect(defaultDisconnectQuiesce)
	c.setConnected(false)
	return nil
}

// HealthCheck reports ErrNotConnected while the session is down.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected reports whether both this client and paho consider the
// session up.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client != nil && c.client.IsConnected()
}

func (c *Client) setConnected(up bool) {
	c.connMu.Lock()
	c.connected = up
	c.connMu.Unlock()
}

// SetOnConnect sets a callback run after every (re)connect.
func (c *Client) SetOnConnect(callback func()) {
	c.callbackMu.Lock()
	c.onConnect = callback
	c.callbackMu.Unlock()
}

// SetOnDisconnect sets a callback run when the session drops.
func (c *Client) SetOnDisconnect(callback func(err error)) {
	c.callbackMu.Lock()
	c.onDisconnect = callback
	c.callbackMu.Unlock()
}

// SetLogger sets the logger.
func (c *Client) SetLogger(logger Logger) {
	c.loggerMu.Lock()
	c.logger = logger
	c.loggerMu.Unlock()
}

func (c *Client) getLogger() Logger {
	c.loggerMu.RLock()
	defer c.loggerMu.RUnlock()
	return c.logger
}

func (c *Client) wrapHandler(handler MessageHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		c.dispatch(handler, msg.Topic(), msg.Payload())
	}
}

// dispatch runs handler, logging its error or a recovered panic.
func (c *Client) dispatch(handler MessageHandler, topic string, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			if logger := c.getLogger(); logger != nil {
				logger.Error("mqtt handler panic recovered", "topic", topic, "panic", r)
			}
		}
	}()

	if err := handler(topic, payload); err != nil {
		if logger := c.getLogger(); logger != nil {
			logger.Warn("mqtt handler returned error", "topic", topic, "error", err)
		}
	}
}
