/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigSetAndGet(t *testing.T) {
	env := newTestEnv(t)

	env.run("config", "author.name", "Jane Writer")
	out := env.run("config", "author.name")
	env.contains(out, "Jane Writer")

	// Written to the global scope under HOME.
	_, err := os.Stat(filepath.Join(env.home, ".outl", "config.yaml"))
	assert.NoError(t, err)
}

func TestConfigList(t *testing.T) {
	env := newTestEnv(t)
	env.run("config", "author.email", "jane@example.com")

	out := env.run("config")
	env.contains(out, "author.name")
	env.contains(out, "author.email")
	env.contains(out, "jane@example.com")
	env.contains(out, "limits.max_name")
}

func TestConfigLocalOverridesGlobal(t *testing.T) {
	env := newTestEnv(t)
	env.run("config", "author.name", "Global Jane")
	env.run("config", "--local", "author.name", "Local Jane")

	out := env.run("config", "author.name")
	env.contains(out, "Local Jane")

	_, err := os.Stat(filepath.Join(env.dir, ".outl", "config.yaml"))
	assert.NoError(t, err)
}

func TestConfigUnknownKey(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("config", "no.such.key")
	assert.Error(t, err)
	env.contains(out, "unknown")
}

func TestConfigRejectsOutOfBoundsLimit(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("config", "limits.max_name", "0")
	assert.Error(t, err)
	env.contains(out, "must be positive")

	out, err = env.runErr("config", "limits.max_name", "99999")
	assert.Error(t, err)
	env.contains(out, "between")
}

func TestConfigLimitEnforced(t *testing.T) {
	env := newTestEnv(t)
	env.run("config", "limits.max_name", "10")
	env.run("project", "new", "P")

	out := env.edit("ha This heading name is far too long")
	env.contains(out, "too long")

	out = env.run("show")
	env.notContains(out, "far too long")
}
