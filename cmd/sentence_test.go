/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentenceAddToSubheading(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")
	env.run("sub", "add", "a", "Background")

	env.run("sentence", "add", "a1", "a grounded fact")

	out := env.run("show")
	assert.Regexp(t, regexp.MustCompile(`\[a1\] Background(?s:.*)1 a grounded fact`), out)
}

func TestSentenceAddDirectlyToHeading(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")

	env.run("sentence", "add", "a", "no subheading needed")

	out := env.run("show")
	env.contains(out, "1 no subheading needed")
	env.notContains(out, "[a1]")
}

func TestSentenceInsertShiftsLines(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")
	env.run("sentence", "add", "a", "A")
	env.run("sentence", "add", "a", "B")
	env.run("sentence", "add", "a", "C")

	env.run("sentence", "insert", "2", "X")

	out := env.run("show")
	assert.Regexp(t, regexp.MustCompile(`1 A(?s:.*)2 X(?s:.*)3 B(?s:.*)4 C`), out)
}

func TestSentenceInsertOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")
	env.run("sentence", "add", "a", "only line")

	out, err := env.runErr("sentence", "insert", "5", "too far")
	assert.Error(t, err)
	env.contains(out, "out of range")
}

func TestSentenceEditShowsDiff(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")
	env.run("sentence", "add", "a", "the old wording")

	out := env.run("sentence", "edit", "1", "the new wording")
	env.contains(out, "- ")
	env.contains(out, "+ ")
	env.contains(out, "old")
	env.contains(out, "new")

	out = env.run("show")
	env.contains(out, "the new wording")
	env.notContains(out, "the old wording")
}

func TestSentenceRmRenumbers(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")
	env.run("sentence", "add", "a", "A")
	env.run("sentence", "add", "a", "B")
	env.run("sentence", "add", "a", "C")

	env.run("sentence", "rm", "2")

	out := env.run("show")
	assert.Regexp(t, regexp.MustCompile(`1 A(?s:.*)2 C`), out)
	env.notContains(out, "B")
}

func TestSentenceMoveAppendsAndCompacts(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")
	env.run("sub", "add", "a", "One")
	env.run("sub", "add", "a", "Two")
	env.run("sentence", "add", "a1", "stays")
	env.run("sentence", "add", "a1", "goes")
	env.run("sentence", "add", "a2", "already here")

	// "goes" is line 2; it appends after "already here" in a2.
	env.run("sentence", "move", "2", "--to", "a2")

	out := env.run("show")
	assert.Regexp(t, regexp.MustCompile(`\[a1\] One(?s:.*)1 stays(?s:.*)\[a2\] Two(?s:.*)2 already here(?s:.*)3 goes`), out)
}

func TestSentenceCopyKeepsOriginal(t *testing.T) {
	env := newTestEnv(t)
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")
	env.run("sub", "add", "a", "One")
	env.run("sub", "add", "a", "Two")
	env.run("sentence", "add", "a1", "duplicated")

	env.run("sentence", "copy", "1", "--to", "a2")

	out := env.run("show")
	assert.Regexp(t, regexp.MustCompile(`1 duplicated(?s:.*)2 duplicated`), out)
}

func TestSentenceRejectsOversizedContent(t *testing.T) {
	env := newTestEnv(t)
	env.run("config", "limits.max_content", "10")
	env.run("project", "new", "P")
	env.run("heading", "add", "Intro")

	out, err := env.runErr("sentence", "add", "a", "this sentence is well past ten bytes")
	assert.Error(t, err)
	env.contains(out, "content too large")
}
