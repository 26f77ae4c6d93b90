// Package mqtt connects the RoboEyes host to an MQTT broker.
//
// The broker carries two flows:
//
//	host ──commands──▶ roboeyes/command/{node}/{component} ──▶ display node
//	caller ──runs────▶ roboeyes/script/{node}/{script}/run ──▶ host
//
// The package manages:
//   - Connection with auto-reconnect and subscription restore
//   - Publishing with QoS and payload-size checks, waiting or fire-and-report
//   - Wildcard subscriptions with panic-safe handlers
//   - Last Will and Testament on roboeyes/system/{node}/status
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, cfg.Node.ID)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.Command(cfg.Node.ID, "eyes1")
//	err = client.Publish(topic, payload, client.QoS(), false)
package mqtt
