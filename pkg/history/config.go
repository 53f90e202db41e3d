package history

import "errors"

var (
	// ErrPathRequired is returned when history is enabled without a database path
	ErrPathRequired = errors.New("history path is required when enabled")
)

// Config controls run history recording
type Config struct {
	Enabled bool   `yaml:"enabled" default:"false"`
	Path    string `yaml:"path" default:".gotcha/history.db"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Enabled && c.Path == "" {
		return ErrPathRequired
	}

	return nil
}
