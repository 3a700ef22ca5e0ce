// Homecore - in-memory smart home coordination engine.
//
// This is the main entry point. It loads configuration, seeds the store,
// wires the coordinator to its event sinks (WebSocket, MQTT, InfluxDB)
// and serves the HTTP API until interrupted.
//
// Usage:
//
//	homecore [-config path]
//	homecore -token <subject> [-token-ttl 24h]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nerrad567/homecore/internal/api"
	"github.com/nerrad567/homecore/internal/auth"
	"github.com/nerrad567/homecore/internal/home"
	"github.com/nerrad567/homecore/internal/infrastructure/config"
	"github.com/nerrad567/homecore/internal/infrastructure/influxdb"
	"github.com/nerrad567/homecore/internal/infrastructure/logging"
	"github.com/nerrad567/homecore/internal/infrastructure/mqtt"
	"github.com/nerrad567/homecore/internal/metrics"
	"github.com/nerrad567/homecore/internal/seed"
	"github.com/nerrad567/homecore/internal/store"
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

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// It returns nil on clean shutdown.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("homecore", flag.ContinueOnError)
	configPath := flags.String("config", getConfigPath(), "path to the YAML configuration file")
	tokenSubject := flags.String("token", "", "print a bearer token for this subject and exit")
	tokenTTL := flags.Duration("token-ttl", auth.DefaultTokenTTL, "lifetime of a token printed with -token")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	// Use default logger until config is loaded
	log := logging.Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if *tokenSubject != "" {
		return printToken(stdout, cfg.Security, *tokenSubject, *tokenTTL)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("starting homecore",
		"version", version,
		"commit", commit,
		"build_date", date,
		"home_id", cfg.Home.ID,
	)
	if cfg.Source == "" {
		log.Warn("config file not found, using defaults", "path", *configPath)
	} else {
		log.Info("configuration loaded", "path", cfg.Source)
	}
	if cfg.Security.JWT.Secret == "" {
		log.Warn("no JWT secret configured, API is unauthenticated")
	}

	h, err := loadSeed(cfg.Seed)
	if err != nil {
		return err
	}
	st := store.New(0)
	h.Apply(st)
	devices, rooms, scenes, automations := st.Counts()
	log.Info("store seeded",
		"source", seedSource(cfg.Seed),
		"devices", devices,
		"rooms", rooms,
		"scenes", scenes,
		"automations", automations,
	)

	m := metrics.New()
	coord := home.New(st,
		home.WithLocation(cfg.Location()),
		home.WithMetrics(m),
	)
	coord.SetLogger(log.Component("home"))

	deps := api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log.Component("api"),
		Home:     coord,
		Metrics:  m,
		Version:  version,
	}
	var sinks []home.Listener

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		publisher := mqtt.NewStatePublisher(mqttClient, mqttClient.QoS(), mqtt.DefaultQueueSize, m)
		publisher.SetLogger(log.Component("mqtt"))
		coord.AddListener(publisher)
		sinks = append(sinks, publisher)
		deps.MQTT = mqttClient

		// Registered after the Close defer so the queue drains before the
		// client disconnects.
		pubCtx, stopPublisher := context.WithCancel(ctx)
		published := make(chan struct{})
		go func() {
			publisher.Run(pubCtx)
			close(published)
		}()
		defer func() {
			stopPublisher()
			<-published
		}()
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		recorder := influxdb.NewRecorder(influxClient)
		coord.AddListener(recorder)
		sinks = append(sinks, recorder)
		deps.InfluxDB = influxClient
	} else {
		log.Info("InfluxDB disabled")
	}

	announceState(coord, time.Now(), sinks...)

	server, err := api.New(deps)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	if err := healthCheck(ctx, server, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path from environment or default.
func getConfigPath() string {
	if path := os.Getenv("HOMECORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadSeed reads the seed file named in cfg, or returns the built-in
// demo home when no path is set.
func loadSeed(cfg config.SeedConfig) (*seed.Home, error) {
	if cfg.Path == "" {
		return seed.Default(), nil
	}
	h, err := seed.LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}
	return h, nil
}

func seedSource(cfg config.SeedConfig) string {
	if cfg.Path == "" {
		return "default"
	}
	return cfg.Path
}

// announceState sends the current state of every device and the security
// mode to sinks, so retained topics and time series start complete.
func announceState(coord *home.Coordinator, at time.Time, sinks ...home.Listener) {
	if len(sinks) == 0 {
		return
	}

	events := make([]home.Event, 0, len(coord.ListDevices())+1)
	for _, d := range coord.ListDevices() {
		events = append(events, home.Event{Type: home.EventDeviceUpdated, ID: d.ID, Payload: d, Timestamp: at})
	}
	events = append(events, home.Event{Type: home.EventSecurityChanged, Payload: coord.SecurityStatus(), Timestamp: at})

	for _, sink := range sinks {
		for _, ev := range events {
			sink.HandleEvent(ev)
		}
	}
}

// printToken writes a signed bearer token for subject.
func printToken(w io.Writer, sec config.SecurityConfig, subject string, ttl time.Duration) error {
	if sec.JWT.Secret == "" {
		return fmt.Errorf("generating token: security.jwt.secret is not set")
	}
	token, err := auth.GenerateToken(subject, sec.JWT.Secret, ttl)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

// healthCheck verifies that every started component is reachable.
func healthCheck(ctx context.Context, server *api.Server, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
