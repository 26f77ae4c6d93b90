package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/actions"
	"github.com/bench2012/Esphome-Chatbot/internal/api"
	"github.com/bench2012/Esphome-Chatbot/internal/automation"
	"github.com/bench2012/Esphome-Chatbot/internal/driver"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/config"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/database"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/influxdb"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/logging"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/mqtt"
	"github.com/bench2012/Esphome-Chatbot/internal/node"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/migrations"
)

// loadConfig loads the host config and applies the --node override.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(getConfigPath(flags.configPath))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flags.nodePath != "" {
		cfg.Node.ConfigFile = flags.nodePath
	}
	return cfg, nil
}

// compileNode loads and compiles the node document at path. Compile errors
// are returned together with the Program so callers can decide whether
// partial programs are acceptable.
func compileNode(path string, drivers node.DriverFactory, log *logging.Logger) (*node.Program, error) {
	doc, err := node.Load(path)
	if err != nil {
		return nil, err
	}
	compiler := node.NewCompiler(actions.NewCatalogue(), drivers)
	compiler.SetLogger(log)
	return compiler.Compile(doc)
}

// hostOptions selects which infrastructure a host connects.
type hostOptions struct {
	// DryRun swaps every driver for the log driver and keeps the execution
	// log in memory. Nothing external is contacted.
	DryRun bool
}

// host owns the infrastructure and engine of one roboeyes process.
type host struct {
	cfg     *config.Config
	log     *logging.Logger
	db      *database.DB
	mqtt    *mqtt.Client
	influx  *influxdb.Client
	hub     *api.Hub
	program *node.Program
	repo    automation.Repository
	engine  *automation.Engine

	closers []func()
}

// openHost connects infrastructure, compiles the node document and builds
// the engine. On error everything opened so far is closed.
//
// Parameters:
//   - cfg: host configuration
//   - log: Logger instance
//   - opts: dry run selection
//
// Returns:
//   - *host: ready host; call Close when done
//   - error: infrastructure or compile failure
func openHost(cfg *config.Config, log *logging.Logger, opts hostOptions) (_ *host, err error) {
	h := &host{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			h.Close()
		}
	}()

	dbCfg := cfg.Database
	if opts.DryRun {
		dbCfg = config.DatabaseConfig{Enabled: true, Path: database.MemoryPath, BusyTimeout: cfg.Database.BusyTimeout}
	}
	if dbCfg.Enabled {
		if err := h.openDatabase(dbCfg); err != nil {
			return nil, err
		}
	} else {
		log.Info("execution log disabled")
	}

	factory := driver.Factory{
		Node:     cfg.Node.ID,
		QoS:      byte(cfg.MQTT.QoS),
		Fallback: cfg.Node.Driver,
		Logger:   log,
	}
	var (
		drivers node.DriverFactory
		metrics []automation.MetricsWriter
	)
	if opts.DryRun {
		drivers = func(componentID, _ string) (roboeyes.Driver, error) {
			return factory.New(componentID, driver.KindLog)
		}
	} else {
		if err := h.connectMQTT(); err != nil {
			return nil, err
		}
		factory.Publisher = h.mqtt
		drivers = factory.New
		metrics = append(metrics, driver.NewStatePublisher(h.mqtt, cfg.Node.ID, h.mqtt.QoS(), log))

		if err := h.connectInfluxDB(); err != nil {
			return nil, err
		}
		if h.influx != nil {
			metrics = append(metrics, h.influx)
		}

		if cfg.API.Enabled {
			h.hub = api.NewHub(log)
			metrics = append(metrics, h.hub)
		}
	}

	program, err := compileNode(cfg.Node.ConfigFile, drivers, log)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", cfg.Node.ConfigFile, err)
	}
	h.program = program
	log.Info("node document compiled",
		"path", cfg.Node.ConfigFile,
		"components", program.Components.Count(),
		"scripts", program.Scripts.Count(),
	)

	if h.db != nil {
		h.repo = automation.NewSQLiteRepository(h.db.DB)
	}
	h.engine = automation.NewEngine(program.Scripts, program.Components, h.repo, fanout(metrics), log, automation.Options{
		QueueSize:  cfg.Engine.QueueSize,
		RunTimeout: cfg.GetRunTimeout(),
	})
	return h, nil
}

func (h *host) openDatabase(cfg config.DatabaseConfig) error {
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	h.db = db
	h.closers = append(h.closers, func() {
		h.log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			h.log.Error("error closing database", "error", closeErr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Migrate(ctx, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	h.log.Info("database ready", "path", db.Path())
	return nil
}

func (h *host) connectMQTT() error {
	client, err := mqtt.Connect(h.cfg.MQTT, h.cfg.Node.ID)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	h.mqtt = client
	client.SetLogger(h.log)
	client.SetOnConnect(func() {
		h.log.Info("MQTT reconnected")
	})
	client.SetOnDisconnect(func(err error) {
		h.log.Warn("MQTT disconnected", "error", err)
	})
	h.closers = append(h.closers, func() {
		h.log.Info("disconnecting from MQTT")
		if closeErr := client.Close(); closeErr != nil {
			h.log.Error("error closing MQTT", "error", closeErr)
		}
	})
	h.log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", h.cfg.MQTT.Broker.Host, h.cfg.MQTT.Broker.Port),
		"client_id", h.cfg.MQTT.Broker.ClientID,
	)
	return nil
}

func (h *host) connectInfluxDB() error {
	client, err := influxdb.Connect(h.cfg.InfluxDB, h.cfg.Node.ID)
	if errors.Is(err, influxdb.ErrDisabled) {
		h.log.Info("InfluxDB disabled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("connecting to InfluxDB: %w", err)
	}
	h.influx = client
	client.SetOnError(func(err error) {
		h.log.Error("InfluxDB write error", "error", err)
	})
	h.closers = append(h.closers, func() {
		h.log.Info("closing InfluxDB connection")
		if closeErr := client.Close(); closeErr != nil {
			h.log.Error("error closing InfluxDB", "error", closeErr)
		}
	})
	h.log.Info("InfluxDB connected",
		"url", h.cfg.InfluxDB.URL,
		"org", h.cfg.InfluxDB.Org,
		"bucket", h.cfg.InfluxDB.Bucket,
	)
	return nil
}

// healthCheck verifies every connected backend.
func (h *host) healthCheck(ctx context.Context) error {
	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if h.mqtt != nil {
		if err := h.mqtt.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if h.influx != nil {
		if err := h.influx.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}

// startAPI serves the HTTP API and WebSocket hub until Close. It is a
// no-op when the API is disabled.
func (h *host) startAPI(ctx context.Context) error {
	if !h.cfg.API.Enabled {
		h.log.Info("API disabled")
		return nil
	}
	srv, err := api.New(api.Deps{
		Config:     h.cfg.API,
		WS:         h.cfg.WebSocket,
		Logger:     h.log,
		Components: h.program.Components,
		Scripts:    h.program.Scripts,
		Runner:     h.engine,
		Executions: h.repo,
		Hub:        h.hub,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	h.closers = append(h.closers, func() {
		if closeErr := srv.Close(); closeErr != nil {
			h.log.Error("error closing API server", "error", closeErr)
		}
	})
	return nil
}

// startEngine runs the engine loop until ctx is cancelled. The returned
// channel is closed once the loop has exited.
func (h *host) startEngine(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := h.engine.Loop(ctx); err != nil && !errors.Is(err, context.Canceled) {
			h.log.Error("engine loop stopped", "error", err)
		}
	}()
	return done
}

// Close releases everything in reverse order of opening.
func (h *host) Close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		h.closers[i]()
	}
	h.closers = nil
}

// multiMetrics forwards telemetry to several writers.
type multiMetrics []automation.MetricsWriter

// fanout returns nil for no writers so the engine skips telemetry.
func fanout(writers []automation.MetricsWriter) automation.MetricsWriter {
	if len(writers) == 0 {
		return nil
	}
	return multiMetrics(writers)
}

func (m multiMetrics) WriteScriptRun(scriptID, status string, actions int, duration time.Duration) {
	for _, w := range m {
		w.WriteScriptRun(scriptID, status, actions, duration)
	}
}

func (m multiMetrics) WriteComponentState(componentID string, fields map[string]any) {
	for _, w := range m {
		w.WriteComponentState(componentID, fields)
	}
}
