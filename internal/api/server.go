package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nerrad567/homecore/internal/home"
	"github.com/nerrad567/homecore/internal/infrastructure/config"
	"github.com/nerrad567/homecore/internal/infrastructure/logging"
	"github.com/nerrad567/homecore/internal/metrics"
	"github.com/nerrad567/homecore/internal/store"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// ConnectionReporter is implemented by outbound sinks whose connection
// state is shown on the system status endpoint.
type ConnectionReporter interface {
	IsConnected() bool
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Home     *home.Coordinator
	Metrics  *metrics.Metrics // optional
	MQTT     ConnectionReporter
	InfluxDB ConnectionReporter
	Version  string
}

// Server is the HTTP API server for homecore.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The hub is registered as a coordinator listener by New, so events are
// relayed from the moment the server exists.
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	secCfg    config.SecurityConfig
	logger    *logging.Logger
	home      *home.Coordinator
	metrics   *metrics.Metrics
	mqtt      ConnectionReporter
	influx    ConnectionReporter
	version   string
	startTime time.Time

	hub *Hub

	routerOnce sync.Once
	router     http.Handler

	server *http.Server
	cancel context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Home == nil {
		return nil, fmt.Errorf("coordinator is required")
	}

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		secCfg:    deps.Security,
		logger:    deps.Logger,
		home:      deps.Home,
		metrics:   deps.Metrics,
		mqtt:      deps.MQTT,
		influx:    deps.InfluxDB,
		version:   deps.Version,
		startTime: time.Now(),
	}
	s.hub = NewHub(s.wsCfg, s.logger)
	s.home.AddListener(s.hub)
	s.registerGauges()

	return s, nil
}

// registerGauges exposes the store sizes, the security mode and the number
// of WebSocket clients as scrape-time gauges.
func (s *Server) registerGauges() {
	st := s.home.Store()
	count := func(pick func(d, r, sc, a int) int) func() float64 {
		return func() float64 {
			return float64(pick(st.Counts()))
		}
	}

	s.metrics.RegisterGaugeFunc("devices", "Devices in the store.",
		count(func(d, _, _, _ int) int { return d }))
	s.metrics.RegisterGaugeFunc("rooms", "Rooms in the store.",
		count(func(_, r, _, _ int) int { return r }))
	s.metrics.RegisterGaugeFunc("scenes", "Scenes in the store.",
		count(func(_, _, sc, _ int) int { return sc }))
	s.metrics.RegisterGaugeFunc("automations", "Automations in the store.",
		count(func(_, _, _, a int) int { return a }))
	s.metrics.RegisterGaugeFunc("security_armed", "1 when the system is armed, 0 otherwise.", func() float64 {
		if st.SecurityMode() == store.ModeArmed {
			return 1
		}
		return 0
	})
	s.metrics.RegisterGaugeFunc("websocket_clients", "Connected WebSocket clients.", func() float64 {
		return float64(s.hub.ClientCount())
	})
}

// Handler returns the HTTP handler serving every route. It is built once.
func (s *Server) Handler() http.Handler {
	s.routerOnce.Do(func() {
		s.router = s.buildRouter()
	})
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub and launches the HTTP listener in a
// background goroutine. The server can be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	go s.hub.Run(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.Handler(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	// Stops the hub, which disconnects every WebSocket client.
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

// HealthCheck verifies the API server is running.
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
