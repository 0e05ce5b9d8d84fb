package bootstrap

import (
	"github.com/kbukum/flowreport/config"
)

// Config is the constraint for application configuration types.
// Any struct that embeds config.ServiceConfig by value satisfies it through
// promoted methods.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Analyzer analyzer.Config `yaml:"analyzer" mapstructure:"analyzer"`
//	}
//
//	app, err := bootstrap.NewApp[*AppConfig](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
