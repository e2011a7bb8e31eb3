package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/gramofon/gramofon/internal/adapters/mqttconn"
	"github.com/gramofon/gramofon/internal/daemon"
	"github.com/gramofon/gramofon/internal/library"
	"github.com/gramofon/gramofon/internal/library/sqlite"
	"github.com/gramofon/gramofon/internal/player"
	"github.com/gramofon/gramofon/internal/rpc"
	"github.com/gramofon/gramofon/internal/transport/embeddedmqtt"
	"github.com/gramofon/gramofon/internal/transport/httpd"
	"github.com/gramofon/gramofon/internal/transport/mqttremote"
)

func main() {
	var (
		configPath string
		logLevel   string
		dbPath     string
		httpListen string
		dryRun     bool
	)

	defaultConfig, err := daemon.DefaultConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&configPath, "config", defaultConfig, "config file path")
	flag.StringVar(&logLevel, "log-level", "", "log level override")
	flag.StringVar(&dbPath, "db", "", "library database path override")
	flag.StringVar(&httpListen, "http-listen", "", "http listen address override")
	flag.BoolVar(&dryRun, "dry-run", false, "validate config and exit")
	flag.Parse()

	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if dbPath != "" {
		cfg.Library.DatabasePath = dbPath
	}
	if httpListen != "" {
		cfg.Transports.HTTP.Listen = httpListen
		cfg.Transports.HTTP.Enabled = true
	}
	if dryRun {
		return
	}

	logger, err := daemon.NewLogger(cfg.Server)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("gramofond failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, cfg daemon.Config) error {
	dbPath := cfg.Library.DatabasePath
	if dbPath == "" {
		var err error
		dbPath, err = daemon.DefaultDatabasePath()
		if err != nil {
			return err
		}
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open library database: %w", err)
	}
	defer store.Close()

	scanner := library.NewScanner(logger, store, cfg.Library.Roots, cfg.Library.Extensions)
	if cfg.Library.ScanOnStart {
		scanner.Trigger()
	}

	driver, err := newDriver(cfg.Player)
	if err != nil {
		return err
	}
	controller := player.NewController(logger, driver)
	server := rpc.NewServer(logger, store, scanner, controller)
	processor := server.Processor()

	logger.Info("gramofond starting",
		zap.String("database", store.Path()),
		zap.Strings("roots", cfg.Library.Roots),
		zap.Strings("methods", server.Registry().Methods()))

	var runners []daemon.Runner

	if cfg.Transports.EmbeddedMQTT.Enabled {
		broker, err := embeddedmqtt.NewBroker(logger, embeddedmqtt.Config{
			Listen:         cfg.Transports.EmbeddedMQTT.Listen,
			AllowAnonymous: cfg.Transports.EmbeddedMQTT.AllowAnonymous,
			Username:       cfg.Transports.EmbeddedMQTT.Username,
			Password:       cfg.Transports.EmbeddedMQTT.Password,
			TLSCA:          cfg.Transports.EmbeddedMQTT.TLSCA,
			TLSCert:        cfg.Transports.EmbeddedMQTT.TLSCert,
			TLSKey:         cfg.Transports.EmbeddedMQTT.TLSKey,
		})
		if err != nil {
			return err
		}
		runners = append(runners, daemon.Runner{Name: "embedded_mqtt", Run: broker.Run})
	}

	if cfg.Transports.HTTP.Enabled {
		httpServer := httpd.NewServer(logger, processor, httpd.Config{
			Listen: cfg.Transports.HTTP.Listen,
			Path:   cfg.Transports.HTTP.Path,
		})
		runners = append(runners, daemon.Runner{Name: "http", Run: httpServer.Run})
	}

	if cfg.Transports.MQTT.Enabled {
		conn, err := mqttconn.Connect(logger, mqttconn.Config{
			BrokerURL: cfg.Transports.MQTT.Broker,
			ClientID:  cfg.Transports.MQTT.ClientID,
			Username:  cfg.Transports.MQTT.Auth.User,
			Password:  cfg.Transports.MQTT.Auth.Pass,
			TLSCA:     cfg.Transports.MQTT.TLS.CA,
			TLSCert:   cfg.Transports.MQTT.TLS.Cert,
			TLSKey:    cfg.Transports.MQTT.TLS.Key,
		})
		if err != nil {
			return fmt.Errorf("connect mqtt broker: %w", err)
		}
		defer conn.Close()

		remote := mqttremote.NewModule(logger, conn, processor, mqttremote.Config{
			CommandTopic: cfg.Transports.MQTT.CommandTopic,
			ReplyTopic:   cfg.Transports.MQTT.ReplyTopic,
		})
		runners = append(runners, daemon.Runner{Name: "mqtt", Run: remote.Run})
	}

	supervisor := daemon.Supervisor{Log: logger}
	return supervisor.Run(ctx, runners)
}

func newDriver(cfg daemon.PlayerConfig) (player.Driver, error) {
	switch cfg.Backend {
	case "", "none":
		return player.NopDriver{}, nil
	case "gstreamer":
		return player.NewGstDriver(cfg.Pipeline, cfg.Device)
	default:
		return nil, fmt.Errorf("unknown player backend %q", cfg.Backend)
	}
}
