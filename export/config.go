package export

import (
	"strings"

	"github.com/kbukum/flowreport/validation"
)

// Config selects and tunes an exporter.
type Config struct {
	// Format is one of csv, json, yaml or table.
	Format string `yaml:"format" mapstructure:"format" validate:"required"`
	// Delimiter separates CSV fields. A single character.
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter" validate:"len=1"`
	// BOM prefixes CSV output with a UTF-8 byte order mark for spreadsheet tools.
	BOM bool `yaml:"bom" mapstructure:"bom"`
	// Indent is the JSON and YAML indentation width.
	Indent int `yaml:"indent" mapstructure:"indent" validate:"gte=0,lte=8"`
	// Summary appends the report metrics to table output.
	Summary bool `yaml:"summary" mapstructure:"summary"`
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = string(FormatCSV)
	}
	if c.Delimiter == "" {
		c.Delimiter = ";"
	}
	if c.Indent == 0 {
		c.Indent = 2
	}
}

// Validate checks field constraints. The format itself is checked against
// the registry by New.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
