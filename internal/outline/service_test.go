package outline_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/outl/internal/outline"
	"github.com/jpl-au/outl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*outline.Service, *store.Project) {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })

	p, err := s.CreateProject(context.Background(), "novel")
	require.NoError(t, err)

	return outline.New(s), p
}

func lineContents(t *testing.T, svc *outline.Service, projectID int64) []string {
	t.Helper()
	lines, err := svc.Store().Lines(context.Background(), projectID)
	require.NoError(t, err)
	var out []string
	for _, l := range lines {
		out = append(out, l.Content)
	}
	return out
}

func TestService_HeadingCommand_CreateSelectRename(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	action, err := svc.HeadingCommand(ctx, p.ID, "a", "Introduction", &sel)
	require.NoError(t, err)
	assert.Equal(t, outline.Created, action)
	assert.Equal(t, "Introduction", sel.HeadingName)

	// Bare key selects without mutating.
	sel = outline.Selection{}
	action, err = svc.HeadingCommand(ctx, p.ID, "a", "", &sel)
	require.NoError(t, err)
	assert.Equal(t, outline.Selected, action)
	assert.Equal(t, "Introduction", sel.HeadingName)

	// Key plus name renames in place.
	action, err = svc.HeadingCommand(ctx, p.ID, "a", "Overview", &sel)
	require.NoError(t, err)
	assert.Equal(t, outline.Renamed, action)

	hs, err := svc.Store().ListHeadings(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Overview", hs[0].Name)
}

func TestService_HeadingCommand_SequentialPolicy(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	// 'b' before 'a' is rejected without touching storage.
	_, err := svc.HeadingCommand(ctx, p.ID, "b", "Skipped", &sel)
	assert.ErrorIs(t, err, outline.ErrOutOfSequence)

	hs, err := svc.Store().ListHeadings(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, hs)

	_, err = svc.HeadingCommand(ctx, p.ID, "a", "First", &sel)
	require.NoError(t, err)
	_, err = svc.HeadingCommand(ctx, p.ID, "b", "Second", &sel)
	require.NoError(t, err)

	_, err = svc.HeadingCommand(ctx, p.ID, "d", "Skipped", &sel)
	assert.ErrorIs(t, err, outline.ErrOutOfSequence)
}

func TestService_HeadingCommand_MissingKeyNeedsName(t *testing.T) {
	svc, p := setupService(t)
	var sel outline.Selection

	_, err := svc.HeadingCommand(context.Background(), p.ID, "a", "", &sel)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, outline.ErrOutOfSequence)
}

func TestService_SubheadingCommand(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	_, err := svc.HeadingCommand(ctx, p.ID, "a", "Intro", &sel)
	require.NoError(t, err)

	action, err := svc.SubheadingCommand(ctx, p.ID, "a", 1, "Background", &sel)
	require.NoError(t, err)
	assert.Equal(t, outline.Created, action)
	assert.Equal(t, "Background", sel.SubheadingName)

	// a3 before a2 violates the sequence.
	_, err = svc.SubheadingCommand(ctx, p.ID, "a", 3, "Skipped", &sel)
	assert.ErrorIs(t, err, outline.ErrOutOfSequence)

	action, err = svc.SubheadingCommand(ctx, p.ID, "a", 2, "Purpose", &sel)
	require.NoError(t, err)
	assert.Equal(t, outline.Created, action)

	// Selecting an existing subheading.
	sel = outline.Selection{}
	action, err = svc.SubheadingCommand(ctx, p.ID, "a", 1, "", &sel)
	require.NoError(t, err)
	assert.Equal(t, outline.Selected, action)
	assert.Equal(t, "Background", sel.SubheadingName)
	assert.Equal(t, "Intro", sel.HeadingName)
}

func TestService_SubheadingCommand_UnknownHeading(t *testing.T) {
	svc, p := setupService(t)
	var sel outline.Selection

	_, err := svc.SubheadingCommand(context.Background(), p.ID, "a", 1, "Background", &sel)
	assert.Error(t, err)
}

func TestService_AddSentence_BlankSubheadingOnDemand(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	_, err := svc.HeadingCommand(ctx, p.ID, "a", "Intro", &sel)
	require.NoError(t, err)

	// No subheading selected: sentence lands in the blank sentinel.
	_, err = svc.AddSentence(ctx, &sel, "hello")
	require.NoError(t, err)

	subs, err := svc.Store().ListSubheadings(ctx, sel.HeadingID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "", subs[0].Name)

	// A second add reuses the same blank subheading.
	_, err = svc.AddSentence(ctx, &sel, "again")
	require.NoError(t, err)
	subs, err = svc.Store().ListSubheadings(ctx, sel.HeadingID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	assert.Equal(t, []string{"hello", "again"}, lineContents(t, svc, p.ID))
}

func TestService_AddSentence_NoSelection(t *testing.T) {
	svc, _ := setupService(t)
	var sel outline.Selection

	_, err := svc.AddSentence(context.Background(), &sel, "orphan")
	assert.ErrorIs(t, err, outline.ErrNoSelection)
}

// Mirrors the canonical session: create a heading, add "hello", insert
// "first" before line 1, then delete line 1.
func TestService_AddInsertDeleteScenario(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	_, err := svc.HeadingCommand(ctx, p.ID, "a", "Intro", &sel)
	require.NoError(t, err)

	_, err = svc.AddSentence(ctx, &sel, "hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, lineContents(t, svc, p.ID))

	_, err = svc.InsertBefore(ctx, p.ID, 1, "first")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "hello"}, lineContents(t, svc, p.ID))

	require.NoError(t, svc.DeleteLine(ctx, p.ID, 1, &sel))
	assert.Equal(t, []string{"hello"}, lineContents(t, svc, p.ID))
}

func TestService_EditLine(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	_, err := svc.HeadingCommand(ctx, p.ID, "a", "Intro", &sel)
	require.NoError(t, err)
	_, err = svc.AddSentence(ctx, &sel, "draft")
	require.NoError(t, err)

	l, err := svc.LineAt(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "draft", l.Content)

	require.NoError(t, svc.EditLine(ctx, p.ID, 1, "final"))
	assert.Equal(t, []string{"final"}, lineContents(t, svc, p.ID))

	err = svc.EditLine(ctx, p.ID, 9, "nope")
	assert.ErrorIs(t, err, store.ErrLineRange)
}

func TestService_KeyMapShiftsAfterDelete(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := svc.HeadingCommand(ctx, p.ID, outline.HeadingKey(len(lineKeys(t, svc, p.ID))), name, &sel)
		require.NoError(t, err)
	}

	m, err := outline.BuildKeyMap(ctx, svc.Store(), p.ID)
	require.NoError(t, err)
	second, ok := m.Heading("b")
	require.True(t, ok)

	require.NoError(t, svc.DeleteHeading(ctx, second.ID))

	// Keys are positional: "Third" slides from 'c' to 'b'.
	m, err = outline.BuildKeyMap(ctx, svc.Store(), p.ID)
	require.NoError(t, err)
	h, ok := m.Heading("b")
	require.True(t, ok)
	assert.Equal(t, "Third", h.Name)
	_, ok = m.Heading("c")
	assert.False(t, ok)
	assert.Equal(t, "c", m.NextHeadingKey())
}

func TestService_MoveHeading_RejectsOwnProject(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	_, err := svc.HeadingCommand(ctx, p.ID, "a", "First", &sel)
	require.NoError(t, err)
	_, err = svc.HeadingCommand(ctx, p.ID, "b", "Second", &sel)
	require.NoError(t, err)

	m, err := outline.BuildKeyMap(ctx, svc.Store(), p.ID)
	require.NoError(t, err)
	second, ok := m.Heading("b")
	require.True(t, ok)

	err = svc.MoveHeading(ctx, second.ID, p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in that project")

	// Order is untouched by the rejected move.
	hs, err := svc.Store().ListHeadings(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", hs[0].Name)
	assert.Equal(t, "Second", hs[1].Name)
}

func TestService_MoveSubheading_RejectsOwnHeading(t *testing.T) {
	svc, p := setupService(t)
	ctx := context.Background()
	var sel outline.Selection

	_, err := svc.HeadingCommand(ctx, p.ID, "a", "First", &sel)
	require.NoError(t, err)
	_, err = svc.SubheadingCommand(ctx, p.ID, "a", 1, "One", &sel)
	require.NoError(t, err)
	_, err = svc.SubheadingCommand(ctx, p.ID, "a", 2, "Two", &sel)
	require.NoError(t, err)

	m, err := outline.BuildKeyMap(ctx, svc.Store(), p.ID)
	require.NoError(t, err)
	two, ok := m.Subheading("a2")
	require.True(t, ok)
	h, ok := m.Heading("a")
	require.True(t, ok)

	err = svc.MoveSubheading(ctx, two.ID, h.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already under that heading")

	subs, err := svc.Store().ListSubheadings(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "One", subs[0].Name)
	assert.Equal(t, "Two", subs[1].Name)
}

func lineKeys(t *testing.T, svc *outline.Service, projectID int64) []string {
	t.Helper()
	m, err := outline.BuildKeyMap(context.Background(), svc.Store(), projectID)
	require.NoError(t, err)
	return m.HeadingKeys()
}
