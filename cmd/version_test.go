/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionWorksWithoutRepository(t *testing.T) {
	// version is a no-store command, so it must run before init.
	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}

	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "Go Version:")
}

func TestVersionJSON(t *testing.T) {
	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}

	out := env.run("version", "-o", "json")

	var info struct {
		BuildTag  string `json:"build_tag"`
		GoVersion string `json:"go_version"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.BuildTag)
	assert.NotEmpty(t, info.GoVersion)
}
