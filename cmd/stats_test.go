/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"testing"
)

func TestStatsCounts(t *testing.T) {
	env := newTestEnv(t)
	seedNovel(env)

	out := env.run("stats")
	env.contains(out, "Projects:    1")
	env.contains(out, "Headings:    2")
	// "Introduction" has the named Background subheading; "Conclusion"
	// gets a blank one when its first sentence is added.
	env.contains(out, "Subheadings: 2")
	env.contains(out, "Sentences:   3")
	env.contains(out, "dense in every sibling group")
}

func TestStatsAfterChurn(t *testing.T) {
	env := newTestEnv(t)
	seedNovel(env)
	env.edit("d 2", "ha", "i 1 rewritten opening", "d 3")

	out := env.run("stats")
	env.contains(out, "dense in every sibling group")
}
