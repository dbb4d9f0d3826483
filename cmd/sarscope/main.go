package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/sarscope/sarscope/internal/api"
	"github.com/sarscope/sarscope/internal/config"
	"github.com/sarscope/sarscope/internal/database"
	"github.com/sarscope/sarscope/internal/engine"
	"github.com/sarscope/sarscope/internal/influx"
	"github.com/sarscope/sarscope/internal/logging"
	"github.com/sarscope/sarscope/internal/monitor"
	"github.com/sarscope/sarscope/internal/render"
	"github.com/sarscope/sarscope/internal/store"
)

var (
	// SessionStart timestamps log and export file names for this run.
	SessionStart = time.Now()

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager
	Logger      *slog.Logger

	dbManager     *database.Manager
	influxManager *influx.Manager
	wsAdapter     *render.WebSocketAdapter
	statusMonitor *monitor.Service
)

// setup loads config, initializes logging and wires the engine's sinks.
// Every sink is optional: a missing database or metrics server degrades to
// a calculation-only engine.
func setup() (*engine.Engine, error) {
	if err := config.Load("."); err != nil {
		fmt.Fprintf(os.Stderr, "config not loaded, using defaults: %v\n", err)
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		if err := os.Mkdir(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("creating logs dir: %w", err)
		}
	}

	logFile, err := os.OpenFile(
		logging.LogFilePath(logsDir, "sarscope", SessionStart),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644,
	)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(logFile, viper.GetString("logLevel"))
	Logger = SlogManager.Logger()

	zlog := zerolog.New(logFile).With().Timestamp().Logger()

	deps := engine.Dependencies{
		Logger: Logger,
		Kappa:  viper.GetFloat64("sampler.kappa"),
	}

	if viper.GetBool("db.enabled") {
		dbManager = database.NewManager(zlog)
		if err := dbManager.Connect(); err != nil {
			Logger.Warn("database unavailable, persistence disabled", "error", err)
		} else if err := dbManager.Setup(); err != nil {
			Logger.Warn("database migration failed, persistence disabled", "error", err)
		} else {
			deps.Store = store.New(dbManager.DB)
		}
	}

	if viper.GetBool("influx.enabled") {
		influxManager = influx.NewManager(zlog, "./influx_backup.gz")
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("influx unavailable, metrics disabled", "error", err)
		} else {
			deps.Metrics = influxManager
		}
	}

	if viper.GetBool("tracker.enabled") {
		tracker := api.New(viper.GetString("tracker.serverUrl"), viper.GetString("tracker.apiKey"))
		if err := tracker.Healthcheck(); err != nil {
			Logger.Warn("tracker unreachable, push disabled", "error", err)
		} else {
			deps.Tracker = tracker
		}
	}

	if viper.GetBool("stream.enabled") {
		wsAdapter = render.NewWebSocketAdapter(Logger)
		if err := wsAdapter.Dial(viper.GetString("stream.url"), viper.GetString("stream.secret")); err != nil {
			Logger.Warn("stream endpoint unreachable, streaming disabled", "error", err)
			wsAdapter = nil
		} else {
			deps.Renderer = wsAdapter
		}
	}

	eng, err := engine.New(deps)
	if err != nil {
		return nil, err
	}

	if viper.GetBool("monitor.enabled") {
		statusMonitor = monitor.NewService(monitor.Dependencies{
			Session:  eng.Session(),
			Logger:   Logger,
			StateDir: viper.GetString("monitor.stateDir"),
		})
		if err := statusMonitor.Start(); err != nil {
			Logger.Warn("status monitor failed to start", "error", err)
			statusMonitor = nil
		}
	}

	return eng, nil
}

// teardown flushes and closes whatever setup opened.
func teardown() {
	if statusMonitor != nil {
		statusMonitor.Stop()
	}
	if wsAdapter != nil {
		if err := wsAdapter.Close(); err != nil {
			Logger.Warn("closing stream adapter", "error", err)
		}
	}
	if dbManager != nil {
		if err := dbManager.Close(); err != nil {
			Logger.Warn("closing database", "error", err)
		}
	}
	if influxManager != nil && influxManager.Client != nil {
		influxManager.Client.Close()
	}
}
