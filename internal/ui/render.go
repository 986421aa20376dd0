// Package ui renders outlines for the terminal. Headings carry their
// display key and entity id, sentences their flattened line number; those
// are exactly the handles the command vocabulary accepts.
package ui

import (
	"fmt"
	"strings"

	"github.com/jpl-au/outl/internal/outline"
	"github.com/jpl-au/outl/internal/store"
)

// RenderOptions controls outline rendering.
type RenderOptions struct {
	// Collapsed reports whether a heading's body should be hidden.
	// Nil means nothing is collapsed.
	Collapsed func(headingID int64) bool
	// ShowIDs includes entity ids, needed when issuing copy/move commands.
	ShowIDs bool
}

// Outline renders a project tree. Line numbers advance across every
// sentence, including those under collapsed headings, so visible numbers
// always match what line-addressed commands act on.
func Outline(tree *store.ProjectTree, opts RenderOptions) string {
	var b strings.Builder

	b.WriteString(AccentBold.Render(tree.Name))
	b.WriteString("\n\n")

	line := 0
	for i, h := range tree.Headings {
		key := outline.HeadingKey(i)
		label := fmt.Sprintf("[%s] %s", key, h.Name)
		if opts.ShowIDs {
			label += Muted.Render(fmt.Sprintf("  (id %d)", h.ID))
		}
		b.WriteString(Accent.Render(label))

		collapsed := opts.Collapsed != nil && opts.Collapsed(h.ID)
		if collapsed {
			hidden := 0
			for _, sub := range h.Subheadings {
				hidden += len(sub.Sentences)
			}
			line += hidden
			b.WriteString(Muted.Render(fmt.Sprintf("  … %d lines hidden", hidden)))
			b.WriteString("\n")
			continue
		}
		b.WriteString("\n")

		for j, sub := range h.Subheadings {
			if sub.Name != "" {
				subLabel := fmt.Sprintf("  [%s] %s", outline.SubheadingKey(key, j+1), sub.Name)
				if opts.ShowIDs {
					subLabel += Muted.Render(fmt.Sprintf("  (id %d)", sub.ID))
				}
				b.WriteString(Accent.Render(subLabel))
				b.WriteString("\n")
			}
			for _, sentence := range sub.Sentences {
				line++
				b.WriteString(fmt.Sprintf("    %s %s\n", Muted.Render(fmt.Sprintf("%3d", line)), sentence))
			}
		}
	}
	return b.String()
}

// ProjectList renders the project listing, most recently active first.
func ProjectList(projects []store.Project, activeID int64) string {
	var b strings.Builder
	for _, p := range projects {
		marker := "  "
		if p.ID == activeID {
			marker = Accent.Render("* ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, p.Name, Muted.Render(fmt.Sprintf("(id %d)", p.ID))))
	}
	return b.String()
}

// Success formats a confirmation message.
func Success(msg string) string {
	return "✓ " + msg
}

// Error formats a user-facing error message.
func Error(msg string) string {
	return "✗ " + msg
}
