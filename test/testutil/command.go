// Package testutil provides helpers for the CLI test suite: building
// and running the textractor binary, live-service gating, and S3 test
// bucket management.
package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// BuildCLI builds the textractor binary once per test run and returns
// its path.
func BuildCLI(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "textractor-bin-*")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "textractor")

		cmd := exec.Command("go", "build", "-o", binPath, "github.com/kumasuke/textractor/cmd/textractor")
		cmd.Dir = moduleRoot(t)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Logf("go build output:\n%s", out)
			buildErr = err
		}
	})
	if buildErr != nil {
		t.Fatalf("failed to build textractor binary: %v", buildErr)
	}
	return binPath
}

// moduleRoot walks up from the working directory to the directory
// containing go.mod.
func moduleRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

// RunCommand runs the textractor CLI with the given arguments and fails
// the test with both output streams visible if it exits non-zero.
func RunCommand(t *testing.T, args ...string) string {
	t.Helper()

	stdout, stderr, err := runCommand(t, args)
	if err != nil {
		t.Fatalf("textractor %v failed: %v\nstdout:\n%s\nstderr:\n%s", args, err, stdout, stderr)
	}
	return stdout
}

// RunCommandExpectError runs the CLI expecting a non-zero exit and
// returns captured stderr.
func RunCommandExpectError(t *testing.T, args ...string) string {
	t.Helper()

	stdout, stderr, err := runCommand(t, args)
	if err == nil {
		t.Fatalf("textractor %v unexpectedly succeeded\nstdout:\n%s", args, stdout)
	}
	return stderr
}

func runCommand(t *testing.T, args []string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(BuildCLI(t), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
