package watch

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	// ErrInvalidDebounce is returned when the debounce window is not positive
	ErrInvalidDebounce = errors.New("debounce must be positive")
	// ErrInvalidInterval is returned when the interval schedule cannot be parsed
	ErrInvalidInterval = errors.New("invalid interval schedule")
	// ErrTargetRequired is returned when no target file is given
	ErrTargetRequired = errors.New("watch target is required")
	// ErrRunnerRequired is returned when no runner is given
	ErrRunnerRequired = errors.New("watch runner is required")
)

// Config controls how file changes and schedules trigger reruns
type Config struct {
	// Debounce is how long changes must settle before a rerun
	Debounce time.Duration `yaml:"debounce" default:"500ms"`

	// Interval optionally reruns the target on a fixed schedule, in cron
	// syntax (e.g. "@every 30s"). Empty disables scheduled reruns.
	Interval string `yaml:"interval"`

	// MetricsAddr exposes Prometheus metrics when set (e.g. ":9091")
	MetricsAddr string `yaml:"metricsAddr"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Debounce <= 0 {
		return ErrInvalidDebounce
	}

	if c.Interval != "" {
		if _, err := parseScheduleInterval(c.Interval); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInterval, err)
		}
	}

	return nil
}

// parseScheduleInterval converts a cron schedule string to a duration.
// Supports @every format (e.g., "@every 30s", "@every 5m") and standard
// cron expressions, for which the gap between the next two runs is used.
func parseScheduleInterval(schedule string) (time.Duration, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	sched, err := parser.Parse(schedule)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule format: %w", err)
	}

	if len(schedule) > 7 && schedule[:6] == "@every" {
		duration, err := time.ParseDuration(schedule[7:])
		if err != nil {
			return 0, fmt.Errorf("failed to parse @every duration: %w", err)
		}

		return duration, nil
	}

	now := time.Now()
	next1 := sched.Next(now)
	next2 := sched.Next(next1)

	return next2.Sub(next1), nil
}
