package state_test

import (
	"testing"

	"github.com/jpl-au/outl/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	st, err := state.Load(dir)
	require.NoError(t, err)
	_, err = st.Active()
	assert.ErrorIs(t, err, state.ErrNoActiveProject)

	st.SetActive(7, "novel")
	st.ToggleCollapsed(3)
	require.NoError(t, st.Save())

	again, err := state.Load(dir)
	require.NoError(t, err)
	id, err := again.Active()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "novel", again.ActiveProjectName)
	assert.True(t, again.Collapsed(3))
	assert.False(t, again.Collapsed(4))
}

func TestState_ToggleCollapsed(t *testing.T) {
	st, err := state.Load(t.TempDir())
	require.NoError(t, err)

	assert.True(t, st.ToggleCollapsed(1))
	assert.True(t, st.Collapsed(1))
	assert.False(t, st.ToggleCollapsed(1))
	assert.False(t, st.Collapsed(1))
}

func TestState_ClearActive(t *testing.T) {
	st, err := state.Load(t.TempDir())
	require.NoError(t, err)

	st.SetActive(7, "novel")
	st.ToggleCollapsed(3)
	st.ClearActive()

	_, err = st.Active()
	assert.ErrorIs(t, err, state.ErrNoActiveProject)
	assert.False(t, st.Collapsed(3))
}
