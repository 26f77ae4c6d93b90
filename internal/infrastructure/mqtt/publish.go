package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// maxPayloadSize caps a single message at 1MB.
const maxPayloadSize = 1 << 20

// Publish sends payload to topic and waits for the broker to acknowledge it.
//
// Returns ErrInvalidTopic, ErrInvalidQoS or ErrPublishFailed for bad input,
// and ErrNotConnected when the broker is unreachable.
//
// Example:
//
//	topic := mqtt.Topics{}.Command("desk", "eyes1")
//	err := client.Publish(topic, []byte(`{"command":"open"}`), 1, false)
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	token, err := c.send(topic, payload, qos, retained)
	if err != nil {
		return err
	}
	return awaitToken(token, c.ackTimeout(), ErrPublishFailed)
}

// PublishAsync hands payload to the client without waiting for the broker.
// Input and connection errors are returned immediately. The delivery
// outcome is passed to onResult from another goroutine once the token
// completes or the acknowledgement timeout expires; onResult may be nil.
func (c *Client) PublishAsync(topic string, payload []byte, qos byte, retained bool, onResult func(error)) error {
	token, err := c.send(topic, payload, qos, retained)
	if err != nil {
		return err
	}
	timeout := c.ackTimeout()
	go func() {
		err := awaitToken(token, timeout, ErrPublishFailed)
		if onResult != nil {
			onResult(err)
		}
	}()
	return nil
}

// QoS returns the configured default QoS.
func (c *Client) QoS() byte { return byte(c.cfg.QoS) }

func (c *Client) send(topic string, payload []byte, qos byte, retained bool) (pahomqtt.Token, error) {
	if err := validatePublish(topic, payload, qos); err != nil {
		return nil, err
	}
	if !c.IsConnected() {
		return nil, ErrNotConnected
	}
	return c.client.Publish(topic, qos, retained, payload), nil
}

func (c *Client) ackTimeout() time.Duration {
	if c.publishTimeout > 0 {
		return c.publishTimeout
	}
	return defaultPublishTimeout
}

// awaitToken waits for the broker to answer token, wrapping any failure in
// failed.
func awaitToken(token pahomqtt.Token, timeout time.Duration, failed error) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("%w: %w", failed, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: no acknowledgement after %v", failed, timeout)
	}
}

func validatePublish(topic string, payload []byte, qos byte) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}
	return nil
}
