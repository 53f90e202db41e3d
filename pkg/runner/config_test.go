package runner

import (
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/edudebug/gotcha/pkg/engine"
	"github.com/edudebug/gotcha/pkg/history"
	"github.com/edudebug/gotcha/pkg/rules"
	"github.com/edudebug/gotcha/pkg/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, defaults.Set(cfg))

	assert.Equal(t, "error", cfg.Logging)
	assert.Equal(t, engine.EngineNamePython, cfg.Engine.Name)
	assert.Equal(t, "python3", cfg.Engine.Interpreter)
	assert.Equal(t, 30*time.Second, cfg.Engine.Timeout)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, ".gotcha/history.db", cfg.History.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Logging: "error",
			Engine: engine.Config{
				Name:           engine.EngineNamePython,
				Interpreter:    "python3",
				Timeout:        time.Second,
				MaxOutputBytes: 1024,
			},
			Watch: watch.Config{Debounce: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "invalid engine timeout",
			mutate:  func(c *Config) { c.Engine.Timeout = 0 },
			wantErr: engine.ErrInvalidTimeout,
		},
		{
			name:    "history enabled without path",
			mutate:  func(c *Config) { c.History = history.Config{Enabled: true} },
			wantErr: history.ErrPathRequired,
		},
		{
			name:    "invalid watch debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = 0 },
			wantErr: watch.ErrInvalidDebounce,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, rules.BuiltinPackName, cfg.Rules.Pack)
		})
	}
}
