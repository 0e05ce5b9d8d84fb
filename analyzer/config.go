package analyzer

import (
	"github.com/kbukum/flowreport/bpmn"
	"github.com/kbukum/flowreport/flow"
	"github.com/kbukum/flowreport/validation"
)

// Config tunes naming defaults of an analysis.
type Config struct {
	DefaultRole       string `yaml:"default_role" mapstructure:"default_role" validate:"required"`
	UnnamedProcess    string `yaml:"unnamed_process" mapstructure:"unnamed_process" validate:"required"`
	MainFlowLabel     string `yaml:"main_flow_label" mapstructure:"main_flow_label" validate:"required"`
	ContinuationLabel string `yaml:"continuation_label" mapstructure:"continuation_label" validate:"required"`
	OtherFlowsLabel   string `yaml:"other_flows_label" mapstructure:"other_flows_label" validate:"required"`
	// KeepVisits keeps the full visit trace on the report.
	KeepVisits bool `yaml:"keep_visits" mapstructure:"keep_visits"`
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	labels := flow.DefaultLabels()
	if c.DefaultRole == "" {
		c.DefaultRole = bpmn.DefaultRole
	}
	if c.UnnamedProcess == "" {
		c.UnnamedProcess = bpmn.DefaultProcessName
	}
	if c.MainFlowLabel == "" {
		c.MainFlowLabel = labels.MainFlow
	}
	if c.ContinuationLabel == "" {
		c.ContinuationLabel = labels.Continuation
	}
	if c.OtherFlowsLabel == "" {
		c.OtherFlowsLabel = labels.OtherFlows
	}
}

// Validate checks the configuration. Call ApplyDefaults first.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

func (c *Config) labels() flow.Labels {
	return flow.Labels{
		MainFlow:     c.MainFlowLabel,
		Continuation: c.ContinuationLabel,
		OtherFlows:   c.OtherFlowsLabel,
	}
}
