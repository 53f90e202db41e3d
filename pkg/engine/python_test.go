package engine

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Subprocess runs that need a real interpreter live in
// python_integration_test.go behind the integration tag. These cover the
// paths that never spawn a process.

func newTestPythonEngine(t *testing.T) Engine {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	eng, err := New(log, &Config{
		Name:           EngineNamePython,
		Interpreter:    "python3",
		Timeout:        5 * time.Second,
		MaxOutputBytes: 4096,
	})
	require.NoError(t, err)

	return eng
}

func TestPythonEngineMissingTarget(t *testing.T) {
	t.Chdir(t.TempDir())

	eng := newTestPythonEngine(t)

	result, err := eng.Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Failed)
	assert.Contains(t, result.Message, "no such file")
	assert.Equal(t, -1, result.ExitCode)

	// The read error must not look like an undefined-variable or syntax
	// failure, those substrings would select the wrong explanation
	assert.NotContains(t, result.Message, "not defined")
	assert.NotContains(t, result.Message, "syntax")
}

func TestPythonEngineTarget(t *testing.T) {
	eng := newTestPythonEngine(t)

	assert.Equal(t, "test.py", eng.Target())
	assert.Equal(t, EngineNamePython, eng.Name())
}
