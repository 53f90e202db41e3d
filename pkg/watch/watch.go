// Package watch reruns the target script whenever it changes on disk, and
// optionally on a fixed schedule.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/edudebug/gotcha/pkg/observability"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Reload triggers, used as metric labels
const (
	TriggerChange   = "change"
	TriggerInterval = "interval"
)

// Runner executes one full run of the target script
type Runner interface {
	Run(ctx context.Context) error
}

// Service watches the target file and drives the runner
type Service struct {
	log    logrus.FieldLogger
	config *Config

	target   string
	runner   Runner
	interval time.Duration

	watcher *fsnotify.Watcher

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService creates a watch service for the given target file
func NewService(log logrus.FieldLogger, cfg *Config, target string, runner Runner) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid watch configuration: %w", err)
	}

	if target == "" {
		return nil, ErrTargetRequired
	}

	if runner == nil {
		return nil, ErrRunnerRequired
	}

	var interval time.Duration

	if cfg.Interval != "" {
		parsed, err := parseScheduleInterval(cfg.Interval)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, err)
		}

		interval = parsed
	}

	return &Service{
		log:      log.WithField("component", "watch"),
		config:   cfg,
		target:   target,
		runner:   runner,
		interval: interval,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the target's directory. Non-blocking; the event loop
// runs in its own goroutine until Stop or context cancellation.
func (s *Service) Start(ctx context.Context) error {
	s.log.WithField("target", s.target).Info("Starting watch service")

	if s.config.MetricsAddr != "" {
		observability.StartMetricsServer(s.log, s.config.MetricsAddr)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	s.watcher = watcher

	// Watch the directory, not the file: editors replace files on save,
	// which would silently drop a watch on the file itself.
	dir := filepath.Dir(s.target)
	if err := s.watcher.Add(dir); err != nil {
		_ = s.watcher.Close()

		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	s.wg.Add(1)

	go s.loop(ctx)

	return nil
}

// Stop shuts down the watcher and waits for the event loop to exit
func (s *Service) Stop() error {
	s.log.Info("Stopping watch service")

	s.stopOnce.Do(func() {
		close(s.done)
	})

	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.log.WithError(err).Error("Failed to close file watcher")
		}
	}

	s.wg.Wait()

	return nil
}

// loop handles filesystem events, the debounce window and the optional
// schedule in a single goroutine so triggered runs never overlap.
func (s *Service) loop(ctx context.Context) {
	defer s.wg.Done()

	debounce := time.NewTimer(s.config.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	var tick <-chan time.Time

	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if !s.relevant(event) {
				continue
			}

			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}

			debounce.Reset(s.config.Debounce)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}

			observability.RecordError("watch", "fsnotify")
			s.log.WithError(err).Error("File watcher error")
		case <-debounce.C:
			s.runOnce(ctx, TriggerChange)
		case <-tick:
			s.runOnce(ctx, TriggerInterval)
		}
	}
}

func (s *Service) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(s.target) {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (s *Service) runOnce(ctx context.Context, trigger string) {
	s.log.WithField("trigger", trigger).Info("Rerunning target")
	observability.RecordWatchReload(trigger)

	if err := s.runner.Run(ctx); err != nil {
		observability.RecordError("watch", "run")
		s.log.WithError(err).Error("Run failed")
	}
}
