package engine

import (
	"errors"
	"time"
)

var (
	// ErrUnknownEngine is returned when no engine is registered for a name
	ErrUnknownEngine = errors.New("unknown engine")
	// ErrInvalidTimeout is returned when the execution timeout is not positive
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrInvalidMaxOutput is returned when the stderr cap is not positive
	ErrInvalidMaxOutput = errors.New("maxOutputBytes must be positive")
	// ErrInterpreterRequired is returned when the python engine has no interpreter binary
	ErrInterpreterRequired = errors.New("interpreter is required")
)

// Config contains execution engine settings
type Config struct {
	Name           string        `yaml:"name" default:"python"`
	Interpreter    string        `yaml:"interpreter" default:"python3"`
	Timeout        time.Duration `yaml:"timeout" default:"30s"`
	MaxOutputBytes int           `yaml:"maxOutputBytes" default:"1048576"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxOutputBytes <= 0 {
		return ErrInvalidMaxOutput
	}

	if c.Name == EngineNamePython && c.Interpreter == "" {
		return ErrInterpreterRequired
	}

	return nil
}
