package storage

import (
	"github.com/kbukum/flowreport/validation"
)

// Provider names.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// Default configuration values.
const (
	DefaultProvider = ProviderLocal
	DefaultBasePath = "./reports"
	DefaultRegion   = "us-east-1"
)

// DefaultRetryAttempts counts the first call; 1 disables retries.
const DefaultRetryAttempts = 3

// Config holds storage configuration. BasePath applies to the local
// provider; the remaining fields apply to s3.
type Config struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled" json:"enabled"`
	Provider string `yaml:"provider" mapstructure:"provider" json:"provider" validate:"required,oneof=local s3"`
	BasePath string `yaml:"base_path" mapstructure:"base_path" json:"base_path" validate:"required_if=Provider local"`

	Bucket string `yaml:"bucket" mapstructure:"bucket" json:"bucket" validate:"required_if=Provider s3"`
	Region string `yaml:"region" mapstructure:"region" json:"region" validate:"required_if=Provider s3"`
	// Endpoint is a custom S3-compatible endpoint (e.g. MinIO).
	Endpoint       string `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
	AccessKey      string `yaml:"access_key" mapstructure:"access_key" json:"-"`
	SecretKey      string `yaml:"secret_key" mapstructure:"secret_key" json:"-"`
	ForcePathStyle bool   `yaml:"force_path_style" mapstructure:"force_path_style" json:"force_path_style"`

	RetryAttempts int `yaml:"retry_attempts" mapstructure:"retry_attempts" json:"retry_attempts" validate:"gte=0,lte=10"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Provider == ProviderLocal && c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Provider == ProviderS3 && c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
}

// Validate checks the configuration for the selected provider.
// A disabled configuration is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.Validate(c)
}
