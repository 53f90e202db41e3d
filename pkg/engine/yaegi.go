package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// goTarget is the fixed script filename the go engine executes, resolved
// relative to the working directory
const goTarget = "test.go"

// goEngine evaluates the target in-process with the yaegi interpreter.
// Evaluation cannot be cancelled, so a timed-out script's goroutine is
// abandoned; acceptable for a one-shot CLI run.
type goEngine struct {
	log logrus.FieldLogger
	cfg *Config
}

func init() {
	RegisterEngine(EngineNameGo, func(log logrus.FieldLogger, cfg *Config) (Engine, error) {
		return &goEngine{log: log, cfg: cfg}, nil
	})
}

func (e *goEngine) Name() string {
	return EngineNameGo
}

func (e *goEngine) Target() string {
	return goTarget
}

func (e *goEngine) Execute(ctx context.Context) (*Result, error) {
	start := time.Now()

	src, err := os.ReadFile(goTarget)
	if err != nil {
		e.log.WithError(err).Debug("Target script is not readable")

		return &Result{
			Failed:   true,
			Message:  err.Error(),
			ExitCode: -1,
			Duration: time.Since(start),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	stderr := newLimitedBuffer(e.cfg.MaxOutputBytes)

	i := interp.New(interp.Options{
		Stdout: os.Stdout,
		Stderr: stderr,
	})

	if useErr := i.Use(stdlib.Symbols); useErr != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", useErr)
	}

	done := make(chan error, 1)

	go func() {
		done <- e.eval(i, string(src))
	}()

	select {
	case evalErr := <-done:
		duration := time.Since(start)

		if evalErr == nil {
			e.log.WithField("duration", duration).Debug("Target script completed")

			return &Result{Duration: duration}, nil
		}

		message := lastLine(evalErr.Error())
		if message == "" {
			message = evalErr.Error()
		}

		return &Result{
			Failed:   true,
			Message:  message,
			ExitCode: -1,
			Stderr:   stderr.String(),
			Duration: duration,
		}, nil
	case <-ctx.Done():
		e.log.WithField("timeout", e.cfg.Timeout).Debug("Target script timed out")

		return &Result{
			Failed:   true,
			Message:  fmt.Sprintf("execution timed out after %s", e.cfg.Timeout),
			ExitCode: -1,
			Stderr:   stderr.String(),
			Duration: time.Since(start),
		}, nil
	}
}

// eval evaluates the source and, when it declares one, invokes main.
// Interpreted panics are recovered into ordinary errors.
func (e *goEngine) eval(i *interp.Interpreter, src string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if _, err = i.Eval(src); err != nil {
		return err
	}

	v, mainErr := i.Eval("main.main")
	if mainErr != nil {
		// No main function declared; evaluation alone was the run
		return nil
	}

	if mainFn, ok := v.Interface().(func()); ok {
		mainFn()
	}

	return nil
}
