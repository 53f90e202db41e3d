package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/edudebug/gotcha/pkg/engine"
	"github.com/edudebug/gotcha/pkg/history"
	"github.com/edudebug/gotcha/pkg/observability"
	"github.com/edudebug/gotcha/pkg/report"
	"github.com/edudebug/gotcha/pkg/rules"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service executes the target script and turns failures into diagnoses
type Service struct {
	config *Config
	log    logrus.FieldLogger

	engine   engine.Engine
	rules    *rules.Service
	reporter *report.Reporter
	history  *history.Store
}

// NewService creates the run pipeline from configuration
func NewService(log logrus.FieldLogger, cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	eng, err := engine.New(log, &cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	rulesService, err := rules.NewService(log, &cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create rules service: %w", err)
	}

	if err := rulesService.Start(); err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	var store *history.Store

	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
	}

	return &Service{
		config:   cfg,
		log:      log,
		engine:   eng,
		rules:    rulesService,
		reporter: report.NewReporter(os.Stdout),
		history:  store,
	}, nil
}

// Target returns the fixed file the configured engine executes
func (s *Service) Target() string {
	return s.engine.Target()
}

// Rules returns the loaded rules service
func (s *Service) Rules() *rules.Service {
	return s.rules
}

// Run executes the target once and prints a diagnosis when it fails. Script
// failures are swallowed here: the console diagnosis is the only surface
// they reach, and the returned error covers tool failures only.
func (s *Service) Run(ctx context.Context) error {
	result, err := s.engine.Execute(ctx)
	if err != nil {
		observability.RecordError("runner", "engine")
		s.log.WithError(err).Debug("Engine fault, diagnosing as failed run")

		result = &engine.Result{
			Failed:   true,
			Message:  err.Error(),
			ExitCode: -1,
		}
	}

	outcome := history.OutcomeSuccess

	var match rules.Match

	if result.Failed {
		outcome = history.OutcomeFailure

		match = s.rules.Classify(rules.RenderContext{
			Message: result.Message,
			Target:  s.engine.Target(),
			Engine:  s.engine.Name(),
		})

		observability.RecordClassification(match.Rule.Name, match.Pack)

		if printErr := s.reporter.Print(&report.Diagnosis{
			Message:     result.Message,
			RuleName:    match.Rule.Name,
			Explanation: match.Explanation,
		}); printErr != nil {
			return printErr
		}
	}

	observability.RecordRun(s.engine.Name(), outcome, result.Duration.Seconds())
	s.record(ctx, result, outcome, match.Rule.Name)

	return nil
}

// Close releases resources held by the pipeline
func (s *Service) Close() error {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			return fmt.Errorf("failed to close history store: %w", err)
		}
	}

	return nil
}

// record persists the run when history is enabled. Recording failures are
// logged, never surfaced; they must not break the run.
func (s *Service) record(ctx context.Context, result *engine.Result, outcome, rule string) {
	if s.history == nil {
		return
	}

	run := &history.Run{
		ID:         uuid.New().String(),
		Engine:     s.engine.Name(),
		Target:     s.engine.Target(),
		Outcome:    outcome,
		Rule:       rule,
		Message:    result.Message,
		ExitCode:   result.ExitCode,
		DurationMs: result.Duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.history.Record(ctx, run); err != nil {
		observability.RecordError("runner", "history_record")
		s.log.WithError(err).Warn("Failed to record run history")
	}
}
