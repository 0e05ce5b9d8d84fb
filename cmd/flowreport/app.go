package main

import (
	"io"
	"time"

	"github.com/kbukum/flowreport/bootstrap"
	"github.com/kbukum/flowreport/logger"
	"github.com/kbukum/flowreport/observability"
	"github.com/kbukum/flowreport/resilience"
	"github.com/kbukum/flowreport/storage"
	"github.com/kbukum/flowreport/version"

	// storage backends
	_ "github.com/kbukum/flowreport/storage/local"
	_ "github.com/kbukum/flowreport/storage/s3"
)

// runner is the application plus the components commands reach into.
type runner struct {
	app       *bootstrap.App[*AppConfig]
	telemetry *observability.Component
	storage   *storage.Component // nil when storage is disabled
}

// newRunner validates cfg and registers telemetry and, when enabled,
// storage. Logs and the startup summary go to stderr.
func newRunner(cfg *AppConfig, stderr io.Writer) (*runner, error) {
	cfg.ApplyDefaults()
	if cfg.Version == "" {
		cfg.Version = version.GetShortVersion()
	}
	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, stderr)
	logger.SetGlobalLogger(log)

	app, err := bootstrap.NewApp(cfg,
		bootstrap.WithLogger(log),
		bootstrap.WithSummaryOutput(stderr),
	)
	if err != nil {
		return nil, err
	}

	tel, err := observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(tel); err != nil {
		return nil, err
	}
	rt := &runner{app: app, telemetry: tel}

	if cfg.Storage.Enabled {
		rt.storage = storage.NewComponent(cfg.Storage, log)
		if err := app.RegisterComponent(rt.storage); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

// byteStore returns the started storage backend with retries, or nil when
// storage is disabled.
func (rt *runner) byteStore() storage.ByteClient {
	if rt.storage == nil || rt.storage.Storage() == nil {
		return nil
	}
	log := rt.app.Logger.WithComponent("storage")
	return storage.NewByteClient(rt.storage.Storage(), storage.WithRetry(resilience.RetryConfig{
		MaxAttempts: rt.app.Cfg.Storage.RetryAttempts,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			log.Warn("storage call failed, retrying", logger.Fields(
				"attempt", attempt,
				"backoff", backoff.String(),
				logger.FieldError, err.Error(),
			))
		},
	}))
}
