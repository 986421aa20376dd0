/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadingAddAssignsNextKey(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")

	out := env.run("heading", "add", "Intro")
	env.contains(out, "Created heading [a] Intro")

	out = env.run("heading", "add", "Body")
	env.contains(out, "Created heading [b] Body")
}

func TestHeadingRename(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")

	env.run("heading", "rename", "a", "Opening")

	out := env.run("show")
	env.contains(out, "[a] Opening")
}

func TestHeadingRmCascadesAndReKeys(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "First")
	env.run("heading", "add", "Second")
	env.run("sentence", "add", "a", "under first")

	out, err := env.runErr("heading", "rm", "a")
	assert.Error(t, err)
	env.contains(out, "--force")

	env.run("heading", "rm", "a", "--force")

	out = env.run("show")
	env.notContains(out, "First")
	env.notContains(out, "under first")
	env.contains(out, "[a] Second")
}

func TestHeadingCopyBefore(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "First")
	env.run("heading", "add", "Second")
	env.run("sub", "add", "a", "Detail")
	env.run("sentence", "add", "a1", "a fact")

	env.run("heading", "copy", "a", "--before", "b")

	out := env.run("show")
	// The copy slots in at b, pushing Second to c.
	assert.Regexp(t, regexp.MustCompile(`\[a\] First(?s:.*)\[b\] First(?s:.*)\[c\] Second`), out)
	// Deep copy carries subheadings and sentences.
	env.contains(out, "[b1] Detail")
	env.contains(out, "2 a fact")
}

func TestHeadingCopyToProject(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "Source")
	env.run("heading", "add", "Shared")
	env.run("sentence", "add", "a", "carried over")
	env.run("project", "new", "Target")
	env.run("project", "use", "Source")

	env.run("heading", "copy", "a", "--to-project", "Target")

	out := env.run("show", "-p", "Target")
	env.contains(out, "Shared")
	env.contains(out, "carried over")

	// The source keeps its copy.
	out = env.run("show", "-p", "Source")
	env.contains(out, "Shared")
}

func TestHeadingMoveToProject(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "Source")
	env.run("heading", "add", "Wanderer")
	env.run("project", "new", "Target")
	env.run("project", "use", "Source")

	env.run("heading", "move", "a", "--to-project", "Target")

	out := env.run("show", "-p", "Source")
	env.notContains(out, "Wanderer")
	out = env.run("show", "-p", "Target")
	env.contains(out, "Wanderer")
}

func TestHeadingMoveToOwnProjectRejected(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "Source")
	env.run("heading", "add", "First")
	env.run("heading", "add", "Second")

	out, err := env.runErr("heading", "move", "b", "--to-project", "Source")
	assert.Error(t, err)
	env.contains(out, "already in that project")

	// The rejected move never reorders.
	out = env.run("show")
	assert.Regexp(t, regexp.MustCompile(`\[a\] First(?s:.*)\[b\] Second`), out)
}

func TestHeadingMoveRank(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "First")
	env.run("heading", "add", "Second")
	env.run("heading", "add", "Third")

	env.run("heading", "move", "c", "--rank", "1")

	out := env.run("show")
	assert.Regexp(t, regexp.MustCompile(`\[a\] Third(?s:.*)\[b\] First(?s:.*)\[c\] Second`), out)
}

func TestHeadingCopyNeedsDestination(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")

	out, err := env.runErr("heading", "copy", "a")
	assert.Error(t, err)
	env.contains(out, "--before")
}
