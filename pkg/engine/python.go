package engine

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// pythonTarget is the fixed script filename the python engine executes,
// resolved relative to the working directory
const pythonTarget = "test.py"

// pythonEngine runs the target through an external interpreter binary
type pythonEngine struct {
	log logrus.FieldLogger
	cfg *Config
}

func init() {
	RegisterEngine(EngineNamePython, func(log logrus.FieldLogger, cfg *Config) (Engine, error) {
		return &pythonEngine{log: log, cfg: cfg}, nil
	})
}

func (e *pythonEngine) Name() string {
	return EngineNamePython
}

func (e *pythonEngine) Target() string {
	return pythonTarget
}

// Execute reads the target and runs the interpreter on it. The child shares
// this process's stdout so the script's own prints reach the console; stderr
// is captured for classification and never echoed.
func (e *pythonEngine) Execute(ctx context.Context) (*Result, error) {
	start := time.Now()

	if _, err := os.ReadFile(pythonTarget); err != nil {
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

	// #nosec G204 -- The interpreter binary comes from trusted configuration
	cmd := exec.CommandContext(ctx, e.cfg.Interpreter, pythonTarget)
	cmd.Stdout = os.Stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	duration := time.Since(start)

	if err == nil {
		e.log.WithField("duration", duration).Debug("Target script completed")

		return &Result{Duration: duration}, nil
	}

	message := lastLine(stderr.String())
	if message == "" {
		message = err.Error()
	}

	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	e.log.WithFields(logrus.Fields{
		"exit_code": exitCode,
		"message":   message,
		"truncated": stderr.truncated,
	}).Debug("Target script failed")

	return &Result{
		Failed:   true,
		Message:  message,
		ExitCode: exitCode,
		Stderr:   stderr.String(),
		Duration: duration,
	}, nil
}
