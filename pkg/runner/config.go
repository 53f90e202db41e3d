// Package runner wires the execution engine, classification rules, console
// reporting and optional history into the run pipeline.
package runner

import (
	"github.com/edudebug/gotcha/pkg/engine"
	"github.com/edudebug/gotcha/pkg/history"
	"github.com/edudebug/gotcha/pkg/rules"
	"github.com/edudebug/gotcha/pkg/watch"
)

// Config represents the complete tool configuration
type Config struct {
	// Logging controls the log level. Defaults to error so a clean run
	// prints nothing at all.
	Logging string `yaml:"logging" default:"error"`

	// Engine selects and configures how the target script is executed
	Engine engine.Config `yaml:"engine"`

	// Rules selects the active rule pack and where packs are discovered
	Rules rules.Config `yaml:"rules"`

	// History configures optional run recording
	History history.Config `yaml:"history"`

	// Watch configures watch mode
	Watch watch.Config `yaml:"watch"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}

	if err := c.Rules.Validate(); err != nil {
		return err
	}

	if err := c.History.Validate(); err != nil {
		return err
	}

	return c.Watch.Validate()
}
