// Package app provides the core application initialization and lifecycle management.
package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cityrent/zufang/internal/config"
	"github.com/cityrent/zufang/internal/scrape"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to release the shared HTTP connections on shutdown.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	HTTPClient *http.Client
	Fetcher    *scrape.Fetcher
	startTime  time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It configures logging from the config, builds the shared HTTP client with
// keep-alive and the fixed request timeout, and wires the listing fetcher on
// top of both.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	// Treat "info" as non-verbose (don't display info logs unless -v is used)
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	httpClient := scrape.NewHTTPClient(cfg)
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Str("base_url", cfg.BaseURLTemplate).
		Msg("HTTP client initialized")

	fetcher := scrape.New(cfg, httpClient)

	return &Application{
		Config:     cfg,
		Logger:     &logger,
		HTTPClient: httpClient,
		Fetcher:    fetcher,
		startTime:  time.Now(),
	}, nil
}

// Close releases the application resources. The only shared resource is the
// HTTP connection pool; closing it is deterministic and safe on all exit
// paths.
func (a *Application) Close() {
	if a == nil {
		return
	}
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	a.Logger.Debug().
		Dur("uptime", time.Since(a.startTime)).
		Msg("Application shut down")
}
