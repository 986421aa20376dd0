/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuideWorksWithoutRepository(t *testing.T) {
	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}

	out := env.run("guide")
	env.contains(out, "terminal outline editor")
	env.contains(out, "outl init")
}

func TestGuideUnknownPage(t *testing.T) {
	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}

	out, err := env.runErr("guide", "nope")
	assert.Error(t, err)
	env.contains(out, "not found")
	env.contains(out, "guide")
}
