package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/automation"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/config"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/logging"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Runner starts script runs. *automation.Engine satisfies it.
type Runner interface {
	Run(ctx context.Context, scriptID, triggerType, triggerSource string, raw map[string]any) (*automation.ScriptExecution, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config     config.APIConfig
	WS         config.WebSocketConfig
	Logger     *logging.Logger
	Components *roboeyes.Registry
	Scripts    *automation.Registry
	Runner     Runner
	Executions automation.Repository // optional: execution endpoints return 503 without it
	Hub        *Hub                  // optional: created by Start when nil
	Version    string
}

// Server is the HTTP API server of the RoboEyes host.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg        config.APIConfig
	wsCfg      config.WebSocketConfig
	logger     *logging.Logger
	components *roboeyes.Registry
	scripts    *automation.Registry
	runner     Runner
	executions automation.Repository
	version    string
	server     *http.Server
	hub        *Hub
	cancel     context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (logger, registries, runner)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Components == nil || deps.Scripts == nil {
		return nil, fmt.Errorf("component and script registries are required")
	}
	if deps.Runner == nil {
		return nil, fmt.Errorf("runner is required")
	}

	return &Server{
		cfg:        deps.Config,
		wsCfg:      deps.WS,
		logger:     deps.Logger,
		components: deps.Components,
		scripts:    deps.Scripts,
		runner:     deps.Runner,
		executions: deps.Executions,
		version:    deps.Version,
		hub:        deps.Hub,
	}, nil
}

// Hub returns the server's WebSocket hub, or nil before Start when none
// was injected.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections.
//
// The listener is bound before Start returns, so a port already in use is
// reported here. Requests are served on a background goroutine until Close.
//
// Parameters:
//   - ctx: Parent context for the hub; cancelling it disconnects WebSocket clients
//
// Returns:
//   - error: If the listener cannot be bound
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.hub == nil {
		s.hub = NewHub(s.logger)
	}
	go s.hub.Run(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		s.cancel()
		return fmt.Errorf("listening on %s: %w", s.server.Addr, err)
	}

	s.logger.Info("API server starting", "address", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}
	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
