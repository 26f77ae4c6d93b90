package mqtt

import "fmt"

// Subscribe routes messages matching topic to handler. Run request topics
// use the + wildcard for the script ID. The handler stays registered
// across reconnects until Unsubscribe.
//
// Example:
//
//	err := client.Subscribe(mqtt.Topics{}.AllScriptRuns("desk"), 1,
//	    func(topic string, payload []byte) error {
//	        _, script, _ := mqtt.ParseScriptRun(topic)
//	        return runScript(script, payload)
//	    })
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	switch {
	case topic == "":
		return ErrInvalidTopic
	case qos > maxQoS:
		return ErrInvalidQoS
	case handler == nil:
		return fmt.Errorf("%w: nil handler for %s", ErrSubscribeFailed, topic)
	case !c.IsConnected():
		return ErrNotConnected
	}

	c.track(subscription{topic: topic, qos: qos, handler: handler})
	token := c.client.Subscribe(topic, qos, c.wrapHandler(handler))
	if err := awaitToken(token, c.ackTimeout(), ErrSubscribeFailed); err != nil {
		c.untrack(topic)
		return err
	}
	return nil
}

// Unsubscribe stops routing topic. Messages already in flight may still
// reach the handler.
func (c *Client) Unsubscribe(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.untrack(topic)
	return awaitToken(c.client.Unsubscribe(topic), c.ackTimeout(), ErrUnsubscribeFailed)
}

// SubscriptionCount returns how many topics are restored on reconnect.
func (c *Client) SubscriptionCount() int {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return len(c.subscriptions)
}

func (c *Client) track(sub subscription) {
	c.subMu.Lock()
	c.subscriptions[sub.topic] = sub
	c.subMu.Unlock()
}

func (c *Client) untrack(topic string) {
	c.subMu.Lock()
	delete(c.subscriptions, topic)
	c.subMu.Unlock()
}
