package exporter_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/outl/internal/exporter"
	"github.com/jpl-au/outl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *store.ProjectTree {
	return &store.ProjectTree{
		ID:   1,
		Name: "My Novel",
		Headings: []store.HeadingNode{
			{
				ID:   10,
				Name: "Intro",
				Subheadings: []store.SubheadingNode{
					{ID: 20, Name: "", Sentences: []string{"opening line"}},
					{ID: 21, Name: "Background", Sentences: []string{"context here"}},
				},
			},
		},
	}
}

func TestText(t *testing.T) {
	out := exporter.Text(sampleTree())

	assert.True(t, strings.HasPrefix(out, "My Novel\n========\n\n"))
	assert.Contains(t, out, "Intro\n-----\n")
	assert.Contains(t, out, "  Background\n")
	assert.Contains(t, out, "    opening line\n")
	assert.Contains(t, out, "    context here\n")
}

func TestMarkdown(t *testing.T) {
	out := exporter.Markdown(sampleTree())

	assert.Contains(t, out, "# My Novel\n")
	assert.Contains(t, out, "## Intro\n")
	assert.Contains(t, out, "### Background\n")
	assert.Contains(t, out, "opening line\n")
	// The blank subheading contributes no header.
	assert.NotContains(t, out, "###  \n")
}

func TestExport_VersionedDirectories(t *testing.T) {
	base := t.TempDir()

	first, err := exporter.Export(sampleTree(), base, exporter.FormatText)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(first.Dir, "-v1"))
	assert.Equal(t, "my-novel.txt", filepath.Base(first.Path))
	assert.FileExists(t, first.Path)

	// A second export the same day lands in -v2, leaving -v1 untouched.
	second, err := exporter.Export(sampleTree(), base, exporter.FormatMarkdown)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(second.Dir, "-v2"))
	assert.Equal(t, "my-novel.md", filepath.Base(second.Path))
	assert.FileExists(t, first.Path)

	data, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# My Novel")
}
