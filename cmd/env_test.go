/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> outline service -> store -> SQLite. Each test
// runs the compiled binary in a fresh temp directory with HOME redirected,
// so global config, session state and the audit log never leak between
// tests or into the developer's real home directory.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the outl binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "outl-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "outl"
		if os.PathSeparator == '\\' {
			binaryName = "outl.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a temporary directory with an initialised outl
// repository and an isolated HOME.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: binary}
	env.run("init")
	return env
}

// run executes outl with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("outl %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes outl and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.runStdinErr("", args...)
}

// runStdin executes outl with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("outl %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes outl with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "OUTL_PROJECT=", "OUTL_DIR=")
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// edit drives the interactive editor with scripted commands, always
// finishing with q so the process exits cleanly.
func (e *testEnv) edit(commands ...string) string {
	e.t.Helper()
	script := strings.Join(append(commands, "q"), "\n") + "\n"
	return e.runStdin(script, "edit")
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output lacks a string.
func (e *testEnv) notContains(output, unexpected string) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected)
}
