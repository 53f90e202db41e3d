package runner

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/edudebug/gotcha/pkg/engine"
	"github.com/edudebug/gotcha/pkg/history"
	"github.com/edudebug/gotcha/pkg/report"
	"github.com/edudebug/gotcha/pkg/rules"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	name   string
	target string
	result *engine.Result
	err    error
}

func (f *fakeEngine) Name() string   { return f.name }
func (f *fakeEngine) Target() string { return f.target }

func (f *fakeEngine) Execute(_ context.Context) (*engine.Result, error) {
	return f.result, f.err
}

func disableColor(t *testing.T) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true

	t.Cleanup(func() { color.NoColor = prev })
}

// newDiagnosisService builds a pipeline around a fake engine with output
// captured in the returned buffer
func newDiagnosisService(t *testing.T, eng engine.Engine) (*Service, *bytes.Buffer) {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	cfg := &Config{}
	require.NoError(t, defaults.Set(cfg))

	rulesService, err := rules.NewService(log, &cfg.Rules)
	require.NoError(t, err)
	require.NoError(t, rulesService.Start())

	out := &bytes.Buffer{}

	return &Service{
		config:   cfg,
		log:      log,
		engine:   eng,
		rules:    rulesService,
		reporter: report.NewReporter(out),
	}, out
}

func failingEngine(message string, exitCode int) *fakeEngine {
	return &fakeEngine{
		name:   engine.EngineNamePython,
		target: "test.py",
		result: &engine.Result{
			Failed:   true,
			Message:  message,
			ExitCode: exitCode,
			Duration: 5 * time.Millisecond,
		},
	}
}

func TestRunCleanScriptPrintsNothing(t *testing.T) {
	disableColor(t)

	svc, out := newDiagnosisService(t, &fakeEngine{
		name:   engine.EngineNamePython,
		target: "test.py",
		result: &engine.Result{ExitCode: 0},
	})

	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, out.String())
}

func TestRunDiagnosisOutput(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "undefined variable",
			message: "NameError: name 'x' is not defined",
			want: "Error detected:\n" +
				"NameError: name 'x' is not defined\n" +
				"\n" +
				"Explanation:\n" +
				"You are using a variable before assigning a value.\n",
		},
		{
			name:    "syntax error",
			message: "SyntaxError: invalid syntax",
			want: "Error detected:\n" +
				"SyntaxError: invalid syntax\n" +
				"\n" +
				"Explanation:\n" +
				"There is a syntax mistake. Check brackets or colons.\n",
		},
		{
			name:    "undefined wins over syntax",
			message: "syntax aside, name 'x' is not defined",
			want: "Error detected:\n" +
				"syntax aside, name 'x' is not defined\n" +
				"\n" +
				"Explanation:\n" +
				"You are using a variable before assigning a value.\n",
		},
		{
			name:    "anything else",
			message: "ZeroDivisionError: division by zero",
			want: "Error detected:\n" +
				"ZeroDivisionError: division by zero\n" +
				"\n" +
				"Explanation:\n" +
				"An error occurred. Please check your code.\n",
		},
		{
			name:    "missing target read error",
			message: "open test.py: no such file or directory",
			want: "Error detected:\n" +
				"open test.py: no such file or directory\n" +
				"\n" +
				"Explanation:\n" +
				"An error occurred. Please check your code.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disableColor(t)

			svc, out := newDiagnosisService(t, failingEngine(tt.message, 1))

			// Script failures never surface as errors
			require.NoError(t, svc.Run(context.Background()))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunSwallowsEngineFault(t *testing.T) {
	disableColor(t)

	svc, out := newDiagnosisService(t, &fakeEngine{
		name:   engine.EngineNameGo,
		target: "test.go",
		err:    errors.New("interpreter setup failed"),
	})

	require.NoError(t, svc.Run(context.Background()))

	assert.Contains(t, out.String(), "interpreter setup failed")
	assert.Contains(t, out.String(), "An error occurred. Please check your code.")
}

func TestRunRecordsFailureHistory(t *testing.T) {
	disableColor(t)

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	svc, _ := newDiagnosisService(t, failingEngine("NameError: name 'total' is not defined", 1))
	svc.history = store

	require.NoError(t, svc.Run(context.Background()))

	runs, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, history.OutcomeFailure, runs[0].Outcome)
	assert.Equal(t, "undefined-variable", runs[0].Rule)
	assert.Equal(t, engine.EngineNamePython, runs[0].Engine)
	assert.Equal(t, "test.py", runs[0].Target)
	assert.Equal(t, 1, runs[0].ExitCode)
	assert.NotEmpty(t, runs[0].ID)
}

func TestRunRecordsSuccessHistory(t *testing.T) {
	disableColor(t)

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	svc, out := newDiagnosisService(t, &fakeEngine{
		name:   engine.EngineNamePython,
		target: "test.py",
		result: &engine.Result{ExitCode: 0, Duration: time.Millisecond},
	})
	svc.history = store

	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, out.String())

	runs, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, history.OutcomeSuccess, runs[0].Outcome)
	assert.Empty(t, runs[0].Rule)
}

func TestNewService(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	t.Run("defaults", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, defaults.Set(cfg))

		svc, err := NewService(log, cfg)
		require.NoError(t, err)

		assert.Equal(t, "test.py", svc.Target())
		assert.NotNil(t, svc.Rules())
		require.NoError(t, svc.Close())
	})

	t.Run("unknown engine", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, defaults.Set(cfg))
		cfg.Engine.Name = "ruby"

		_, err := NewService(log, cfg)
		require.ErrorIs(t, err, engine.ErrUnknownEngine)
	})

	t.Run("invalid engine timeout", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, defaults.Set(cfg))
		cfg.Engine.Timeout = -time.Second

		_, err := NewService(log, cfg)
		require.ErrorIs(t, err, engine.ErrInvalidTimeout)
	})

	t.Run("history store opened when enabled", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, defaults.Set(cfg))
		cfg.History.Enabled = true
		cfg.History.Path = filepath.Join(t.TempDir(), "nested", "history.db")

		svc, err := NewService(log, cfg)
		require.NoError(t, err)
		require.NotNil(t, svc.history)
		require.NoError(t, svc.Close())
	})
}
