// Package config loads and validates the RoboEyes host configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with ROBOEYES_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// The host configuration says where things run (broker, database,
// telemetry). What the eyes do is described separately, in the node
// document named by node.config_file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Node.ID)
package config
