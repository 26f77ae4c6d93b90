package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bench2012/Esphome-Chatbot/internal/automation"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/logging"
)

// triggerSourceCLI is recorded as the trigger source of command line runs.
const triggerSourceCLI = "cli"

func newRunCmd(flags *globalFlags) *cobra.Command {
	var (
		rawArgs []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Play one script once",
		Long: `Compile the node document and play one script on its components.

Arguments are passed as --arg name=value and converted to the script's
declared parameter types. With --dry-run every component uses the log
driver and nothing external is contacted.`,
		Example: `  roboeyes run greet --arg who_mood=happy --arg bright=200
  roboeyes run blink --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptArgs, err := parseArgs(rawArgs)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging, version)

			h, err := openHost(cfg, log, hostOptions{DryRun: dryRun})
			if err != nil {
				return err
			}
			defer h.Close()

			ctx := cmd.Context()
			if err := h.healthCheck(ctx); err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			loopCtx, stop := context.WithCancel(ctx)
			stopped := h.startEngine(loopCtx)
			defer func() {
				stop()
				<-stopped
			}()

			exec, err := h.engine.Run(ctx, args[0], automation.TriggerManual, triggerSourceCLI, scriptArgs)
			if err != nil {
				return err
			}
			if err := printExecution(cmd.OutOrStdout(), exec); err != nil {
				return err
			}
			if exec.Status != automation.StatusCompleted {
				return fmt.Errorf("script %s %s", exec.ScriptID, exec.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "script argument as name=value (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log driver calls instead of sending them")
	return cmd
}

// parseArgs turns name=value pairs into script arguments. Values are read
// as YAML scalars, so 3 is an int, true a bool and happy a string.
func parseArgs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --arg %q: want name=value", pair)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("invalid --arg %q: %s given twice", pair, name)
		}

		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid --arg %q: %w", pair, err)
		}
		if v == nil {
			v = raw
		}
		out[name] = v
	}
	return out, nil
}

func printExecution(w io.Writer, exec *automation.ScriptExecution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exec); err != nil {
		return fmt.Errorf("printing execution: %w", err)
	}
	return nil
}
