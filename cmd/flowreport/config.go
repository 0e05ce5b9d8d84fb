package main

import (
	"fmt"

	"github.com/kbukum/flowreport/analyzer"
	"github.com/kbukum/flowreport/config"
	"github.com/kbukum/flowreport/export"
	"github.com/kbukum/flowreport/observability"
	"github.com/kbukum/flowreport/server"
	"github.com/kbukum/flowreport/storage"
)

const (
	serviceName = "flowreport"
	envPrefix   = "FLOWREPORT"
)

// AppConfig is the flowreport configuration file.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Analyzer      analyzer.Config      `yaml:"analyzer" mapstructure:"analyzer"`
	Export        export.Config        `yaml:"export" mapstructure:"export"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Analyzer.ApplyDefaults()
	c.Export.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	sections := []struct {
		name string
		fn   func() error
	}{
		{"analyzer", c.Analyzer.Validate},
		{"export", c.Export.Validate},
		{"storage", c.Storage.Validate},
		{"server", c.Server.Validate},
		{"observability", c.Observability.Validate},
	}
	for _, s := range sections {
		if err := s.fn(); err != nil {
			return fmt.Errorf("config.%s: %w", s.name, err)
		}
	}
	return nil
}

// loadConfig reads the config file, the env file and FLOWREPORT_* variables.
// --log-level wins over all of them.
func loadConfig(g *globalFlags) (*AppConfig, error) {
	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if g.configFile != "" {
		opts = append(opts, config.WithConfigFile(g.configFile))
	}
	if g.envFile != "" {
		opts = append(opts, config.WithEnvFile(g.envFile))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	return cfg, nil
}
