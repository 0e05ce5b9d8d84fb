package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/flowreport/component"
)

const componentName = "telemetry"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component installs the OTLP tracer and meter providers on Start and
// flushes them on Stop.
type Component struct {
	cfg         Config
	service     string
	version     string
	environment string

	metrics *Metrics
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
}

// NewComponent creates the telemetry component. Its Metrics are usable
// right away: instruments come from the global meter and follow the
// provider that Start installs.
func NewComponent(cfg Config, service, version, environment string) (*Component, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("telemetry config: %w", err)
	}
	c := &Component{cfg: cfg, service: service, version: version, environment: environment}
	if cfg.MetricsEnabled {
		m, err := NewMetrics(Meter(service))
		if err != nil {
			return nil, err
		}
		c.metrics = m
	}
	return c, nil
}

// Metrics returns the instruments, or nil when metrics are disabled.
func (c *Component) Metrics() *Metrics { return c.metrics }

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start installs the enabled providers.
func (c *Component) Start(ctx context.Context) error {
	if c.cfg.TracingEnabled {
		tc := c.cfg.tracerConfig(c.service, c.version, c.environment)
		tp, err := InitTracer(ctx, &tc)
		if err != nil {
			return err
		}
		c.tp = tp
	}
	if c.cfg.MetricsEnabled {
		mc := c.cfg.meterConfig(c.service, c.version, c.environment)
		mp, err := InitMeter(ctx, &mc)
		if err != nil {
			return err
		}
		c.mp = mp
	}
	return nil
}

// Stop flushes pending spans and metrics.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		if err := c.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
		c.tp = nil
	}
	if c.mp != nil {
		if err := c.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
		c.mp = nil
	}
	return errors.Join(errs...)
}

// Health is always healthy; export failures surface on Stop.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{Name: componentName, Status: component.StatusHealthy, Message: c.mode()}
}

// Describe returns the startup summary line.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled() {
		details = c.mode() + " -> " + c.cfg.Endpoint
	}
	return component.Description{Name: "Telemetry", Type: "otlp", Details: details}
}

func (c *Component) mode() string {
	return fmt.Sprintf("tracing=%s metrics=%s", onOff(c.cfg.TracingEnabled), onOff(c.cfg.MetricsEnabled))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
