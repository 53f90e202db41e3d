// Package engine provides the execution engines that run the learner's
// target script. Each engine owns a fixed target filename and knows how to
// execute it: the python engine shells out to an interpreter binary, the go
// engine evaluates the source in-process with yaegi.
//
// The tool exists to run whatever the learner wrote, so engines make no
// attempt to sandbox beyond a wall-clock timeout and an output cap.
package engine

import (
	"context"
	"time"
)

// Engine names accepted in configuration
const (
	EngineNamePython = "python"
	EngineNameGo     = "go"
)

// Result describes the outcome of a single execution of the target script
type Result struct {
	// Failed is true when the script did not run to completion
	Failed bool

	// Message is the text used to classify the failure. For subprocess
	// engines this is the last non-empty stderr line, for in-process
	// engines the interpreter's error string.
	Message string

	// ExitCode is the interpreter process exit code, -1 when no process
	// ran or it was killed before exiting
	ExitCode int

	// Stderr holds the captured interpreter stderr, capped at the
	// configured maximum
	Stderr string

	Duration time.Duration
}

// Engine executes a fixed target script file
type Engine interface {
	// Name returns the engine identifier used in configuration
	Name() string

	// Target returns the fixed filename the engine executes, resolved
	// relative to the working directory
	Target() string

	// Execute runs the target once. A failure to read or run the target
	// is reported through Result.Failed, not through the error return;
	// the error is reserved for engine-internal faults and is treated by
	// callers as a failed run as well.
	Execute(ctx context.Context) (*Result, error)
}
