package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRunner struct {
	mu   sync.Mutex
	runs int
}

func (r *countingRunner) Run(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++

	return nil
}

func (r *countingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.runs
}

func newTestService(t *testing.T, cfg *Config, runner Runner) (*Service, string) {
	t.Helper()

	target := filepath.Join(t.TempDir(), "test.py")
	require.NoError(t, os.WriteFile(target, []byte("print('ok')\n"), 0o600))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	svc, err := NewService(log, cfg, target, runner)
	require.NoError(t, err)

	return svc, target
}

func TestNewServiceValidation(t *testing.T) {
	log := logrus.New()
	runner := &countingRunner{}

	tests := []struct {
		name    string
		config  *Config
		target  string
		runner  Runner
		wantErr error
	}{
		{
			name:    "missing target",
			config:  &Config{Debounce: time.Second},
			target:  "",
			runner:  runner,
			wantErr: ErrTargetRequired,
		},
		{
			name:    "missing runner",
			config:  &Config{Debounce: time.Second},
			target:  "test.py",
			runner:  nil,
			wantErr: ErrRunnerRequired,
		},
		{
			name:    "invalid debounce",
			config:  &Config{},
			target:  "test.py",
			runner:  runner,
			wantErr: ErrInvalidDebounce,
		},
		{
			name:    "invalid interval",
			config:  &Config{Debounce: time.Second, Interval: "every now and then"},
			target:  "test.py",
			runner:  runner,
			wantErr: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(log, tt.config, tt.target, tt.runner)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServiceRunsOnChange(t *testing.T) {
	runner := &countingRunner{}
	svc, target := newTestService(t, &Config{Debounce: 50 * time.Millisecond}, runner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	defer func() { require.NoError(t, svc.Stop()) }()

	require.NoError(t, os.WriteFile(target, []byte("print('changed')\n"), 0o600))

	require.Eventually(t, func() bool {
		return runner.count() >= 1
	}, 5*time.Second, 10*time.Millisecond, "expected a run after the target changed")
}

func TestServiceDebounceCoalesces(t *testing.T) {
	runner := &countingRunner{}
	svc, target := newTestService(t, &Config{Debounce: 300 * time.Millisecond}, runner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	defer func() { require.NoError(t, svc.Stop()) }()

	// A burst of saves within the debounce window collapses to one run
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte("print('burst')\n"), 0o600))
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return runner.count() == 1
	}, 5*time.Second, 10*time.Millisecond)

	assert.Never(t, func() bool {
		return runner.count() > 1
	}, 500*time.Millisecond, 50*time.Millisecond, "burst should trigger exactly one run")
}

func TestServiceIgnoresOtherFiles(t *testing.T) {
	runner := &countingRunner{}
	svc, target := newTestService(t, &Config{Debounce: 50 * time.Millisecond}, runner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	defer func() { require.NoError(t, svc.Stop()) }()

	other := filepath.Join(filepath.Dir(target), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("unrelated\n"), 0o600))

	assert.Never(t, func() bool {
		return runner.count() > 0
	}, 500*time.Millisecond, 50*time.Millisecond, "sibling files must not trigger runs")
}

func TestServiceIntervalReruns(t *testing.T) {
	runner := &countingRunner{}
	svc, _ := newTestService(t, &Config{
		Debounce: 50 * time.Millisecond,
		Interval: "@every 100ms",
	}, runner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	defer func() { require.NoError(t, svc.Stop()) }()

	require.Eventually(t, func() bool {
		return runner.count() >= 2
	}, 5*time.Second, 10*time.Millisecond, "expected periodic reruns")
}

func TestServiceStopIsIdempotent(t *testing.T) {
	runner := &countingRunner{}
	svc, _ := newTestService(t, &Config{Debounce: 50 * time.Millisecond}, runner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Start(ctx))

	require.NoError(t, svc.Stop())
	require.NoError(t, svc.Stop())
}
