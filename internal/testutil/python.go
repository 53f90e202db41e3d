//go:build integration

package testutil

import (
	"os/exec"
	"testing"
)

// RequirePython skips the test when no python3 binary is on PATH. Tests that
// execute real scripts cannot assert anything useful without one.
func RequirePython(t *testing.T) {
	t.Helper()

	path, err := exec.LookPath("python3")
	if err != nil {
		t.Skipf("python3 not found on PATH: %v", err)
	}

	t.Logf("using python interpreter at %s", path)
}
