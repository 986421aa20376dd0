/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesRepository(t *testing.T) {
	env := newTestEnv(t)

	_, err := os.Stat(filepath.Join(env.dir, ".outl", "outlines.db"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(env.dir, ".outl", ".gitignore"))
	require.NoError(t, err)
}

func TestInitRefusesExisting(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("init")
	assert.Error(t, err)
	env.contains(out, "already exists")
}

func TestInitForceReinitialises(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "Alpha")

	env.run("init", "--force")

	out := env.run("project", "ls")
	env.notContains(out, "Alpha")
}

func TestCommandsFailWithoutRepository(t *testing.T) {
	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}

	out, err := env.runErr("project", "ls")
	assert.Error(t, err)
	env.contains(out, "not initialised")
}
