package storage

import (
	"context"
	"fmt"

	"github.com/kbukum/flowreport/component"
	"github.com/kbukum/flowreport/logger"
)

// healthProbeKey is checked by Health; its absence is not an error.
const healthProbeKey = ".flowreport-health"

// Component wraps Storage for lifecycle management by the component registry.
type Component struct {
	storage Storage
	cfg     Config
	log     *logger.Logger
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a storage component. Start builds the backend.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	if log == nil {
		log = logger.WithComponent("storage")
	}
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log}
}

// Storage returns the backend, or nil before Start or when disabled.
func (c *Component) Storage() Storage {
	return c.storage
}

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start initializes the storage backend.
func (c *Component) Start(_ context.Context) error {
	if !c.cfg.Enabled {
		c.log.Debug("storage component is disabled")
		return nil
	}

	s, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.storage = s
	return nil
}

// Stop drops the backend.
func (c *Component) Stop(_ context.Context) error {
	c.storage = nil
	return nil
}

// Health probes the backend with an existence check.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.cfg.Enabled {
		return component.Health{Name: c.Name(), Status: component.StatusHealthy, Message: "disabled"}
	}
	if c.storage == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "storage not initialized"}
	}
	if _, err := c.storage.Exists(ctx, healthProbeKey); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("health probe failed: %v", err),
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the startup summary line.
func (c *Component) Describe() component.Description {
	details := "provider=" + c.cfg.Provider
	switch {
	case !c.cfg.Enabled:
		details = "disabled"
	case c.cfg.Provider == ProviderS3:
		details += " bucket=" + c.cfg.Bucket
	case c.cfg.Provider == ProviderLocal:
		details += " path=" + c.cfg.BasePath
	}
	return component.Description{Name: "Storage", Type: "storage", Details: details}
}
