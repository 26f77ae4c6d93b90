package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bench2012/Esphome-Chatbot/internal/automation"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/logging"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/mqtt"
)

// errWrongNode is returned for run requests addressed to another node.
var errWrongNode = errors.New("run request for another node")

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the host and play scripts requested over MQTT or HTTP",
		Long: `Connect to MQTT, the execution log and (when enabled) InfluxDB, start
the display loop and play scripts published to
roboeyes/script/{node}/{script}/run. The payload is a JSON object of
script arguments and may be empty.

When api.enabled is set the HTTP API is served as well:
POST /api/v1/scripts/{id}/run plays a script, and /api/v1/ws streams
component state and run results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log := logging.New(cfg.Logging, version)
			log.Info("starting roboeyes host",
				"version", version,
				"commit", commit,
				"build_date", date,
				"node", cfg.Node.ID,
			)

			h, err := openHost(cfg, log, hostOptions{})
			if err != nil {
				return err
			}
			defer h.Close()

			ctx := cmd.Context()
			if err := h.healthCheck(ctx); err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			log.Info("all health checks passed")

			stopped := h.startEngine(ctx)

			topic := mqtt.Topics{}.AllScriptRuns(cfg.Node.ID)
			handler := newRunHandler(ctx, h.engine, cfg.Node.ID, log)
			if err := h.mqtt.Subscribe(topic, h.mqtt.QoS(), handler); err != nil {
				return fmt.Errorf("subscribing to run requests: %w", err)
			}
			if err := h.startAPI(ctx); err != nil {
				return err
			}

			log.Info("initialisation complete, waiting for run requests", "topic", topic)

			<-ctx.Done()
			log.Info("shutdown signal received, cleaning up")
			if err := h.mqtt.Unsubscribe(topic); err != nil {
				log.Warn("run requests still subscribed", "topic", topic, "error", err)
			}
			<-stopped

			log.Info("roboeyes host stopped")
			return nil
		},
	}
}

// runner is the engine surface the run handler needs.
type runner interface {
	Run(ctx context.Context, scriptID, triggerType, triggerSource string, raw map[string]any) (*automation.ScriptExecution, error)
}

// newRunHandler returns the MQTT handler for script run requests. Runs are
// started on their own goroutine so the MQTT client keeps delivering while
// a run waits for the engine.
func newRunHandler(ctx context.Context, engine runner, nodeID string, log *logging.Logger) mqtt.MessageHandler {
	return func(topic string, payload []byte) error {
		target, scriptID, ok := mqtt.ParseScriptRun(topic)
		if !ok {
			return fmt.Errorf("unexpected topic %q", topic)
		}
		if target != nodeID {
			return fmt.Errorf("%w: %s", errWrongNode, target)
		}

		args, err := decodeRunPayload(payload)
		if err != nil {
			return err
		}

		go func() {
			exec, err := engine.Run(ctx, scriptID, automation.TriggerMQTT, topic, args)
			if err != nil {
				log.Warn("script run rejected", "script_id", scriptID, "topic", topic, "error", err)
				return
			}
			log.Debug("script run finished", "script_id", scriptID, "execution_id", exec.ID, "status", exec.Status)
		}()
		return nil
	}
}

// decodeRunPayload reads the JSON argument object of a run request. An
// empty payload means no arguments.
func decodeRunPayload(payload []byte) (map[string]any, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var args map[string]any
	if err := json.Unmarshal(payload, &args); err != nil {
		return nil, fmt.Errorf("decoding run payload: %w", err)
	}
	return args, nil
}
