package ui_test

import (
	"strings"
	"testing"

	"github.com/jpl-au/outl/internal/store"
	"github.com/jpl-au/outl/internal/ui"
	"github.com/stretchr/testify/assert"
)

func sampleTree() *store.ProjectTree {
	return &store.ProjectTree{
		ID:   1,
		Name: "novel",
		Headings: []store.HeadingNode{
			{
				ID:   10,
				Name: "Intro",
				Subheadings: []store.SubheadingNode{
					{ID: 20, Name: "", Sentences: []string{"first", "second"}},
					{ID: 21, Name: "Background", Sentences: []string{"third"}},
				},
			},
			{
				ID:   11,
				Name: "Body",
				Subheadings: []store.SubheadingNode{
					{ID: 22, Name: "Argument", Sentences: []string{"fourth"}},
				},
			},
		},
	}
}

func TestOutline_KeysAndLineNumbers(t *testing.T) {
	out := ui.Outline(sampleTree(), ui.RenderOptions{})

	assert.Contains(t, out, "[a] Intro")
	assert.Contains(t, out, "[a2] Background")
	assert.Contains(t, out, "[b] Body")
	assert.Contains(t, out, "  1 first")
	assert.Contains(t, out, "  3 third")
	assert.Contains(t, out, "  4 fourth")
	// The blank subheading gets no label line of its own.
	assert.NotContains(t, out, "[a1]")
}

func TestOutline_ShowIDs(t *testing.T) {
	out := ui.Outline(sampleTree(), ui.RenderOptions{ShowIDs: true})
	assert.Contains(t, out, "(id 10)")
	assert.Contains(t, out, "(id 21)")
}

func TestOutline_CollapsedKeepsNumbering(t *testing.T) {
	out := ui.Outline(sampleTree(), ui.RenderOptions{
		Collapsed: func(id int64) bool { return id == 10 },
	})

	assert.Contains(t, out, "3 lines hidden")
	assert.NotContains(t, out, "first")
	// Numbering continues past the hidden heading.
	assert.Contains(t, out, "  4 fourth")
}

func TestPager(t *testing.T) {
	content := strings.Join([]string{"1", "2", "3", "4", "5"}, "\n")
	p := ui.NewPager(content, 2)

	assert.Equal(t, 3, p.PageCount())
	assert.Equal(t, "1\n2", p.Page())

	assert.True(t, p.Next())
	assert.Equal(t, "3\n4", p.Page())
	assert.Equal(t, 2, p.Current())

	assert.True(t, p.Next())
	assert.Equal(t, "5", p.Page())
	assert.False(t, p.Next())

	assert.True(t, p.Prev())
	assert.True(t, p.Prev())
	assert.False(t, p.Prev())
	assert.Equal(t, 1, p.Current())
}

func TestPager_NoHeight(t *testing.T) {
	p := ui.NewPager("a\nb\nc", 0)
	assert.Equal(t, 1, p.PageCount())
	assert.Equal(t, "a\nb\nc", p.Page())
}
