package cmd

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/edudebug/gotcha/pkg/runner"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads tool configuration from a YAML file. A missing file is
// not an error; the defaults describe a complete working setup.
func LoadConfig(path string) (*runner.Config, error) {
	if path == "" {
		path = "gotcha.yaml"
	}

	config := &runner.Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
