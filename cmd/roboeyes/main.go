// RoboEyes host.
//
// Compiles a node document of RoboEyes displays and scripts, then plays
// scripts on the displays when asked: once from the command line, or on
// request over MQTT.
//
//	roboeyes validate configs/roboeyes.yaml
//	roboeyes run greet --arg who_mood=happy --dry-run
//	roboeyes serve --config configs/config.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// configEnv names the environment variable that overrides the config path.
const configEnv = "ROBOEYES_CONFIG"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	nodePath   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "roboeyes",
		Short: "Compile and play RoboEyes display scripts",
		Long: `roboeyes compiles a node document declaring RoboEyes displays and
scripts of display actions, and plays those scripts on the displays.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "",
		fmt.Sprintf("host config file (default $%s or %s)", configEnv, defaultConfigPath))
	root.PersistentFlags().StringVar(&flags.nodePath, "node", "",
		"node document (default node.config_file from the host config)")

	root.AddCommand(
		newValidateCmd(flags),
		newRunCmd(flags),
		newServeCmd(flags),
		newVersionCmd(),
	)
	return root
}

// getConfigPath returns the configuration file path: the flag, then
// ROBOEYES_CONFIG, then the default. The default is skipped when it does not
// exist so the host can run from built-in defaults.
func getConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if path := os.Getenv(configEnv); path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); err != nil {
		return ""
	}
	return defaultConfigPath
}
