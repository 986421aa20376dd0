package log

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Use temp directory for test database
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("open and close", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		// Verify database file exists
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetRepo("/test/project/.outl")

		Log(Entry{
			Source:  "sentence:add",
			Author:  "test-user",
			Action:  "add",
			Project: "novel",
			Line:    3,
			Success: true,
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var source, action, project string
		var line, success int
		err = db.QueryRow("SELECT source, action, project, line, success FROM log WHERE id = 1").
			Scan(&source, &action, &project, &line, &success)
		require.NoError(t, err)
		assert.Equal(t, "sentence:add", source)
		assert.Equal(t, "add", action)
		assert.Equal(t, "novel", project)
		assert.Equal(t, 3, line)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		SetRepo("/test/project/.outl")

		Log(Entry{
			Source:  "sentence:delete",
			Action:  "delete",
			Project: "novel",
			Success: false,
			Error:   "line number out of range",
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "line number out of range", errMsg)
	})

	t.Run("fluent builder", func(t *testing.T) {
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		Event("heading:move", "move").
			Author("alice").
			Project("novel").
			Detail("target_project", 2).
			Write(errors.New("not found"))

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var source, detail, errMsg string
		err = db.QueryRow("SELECT source, detail, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &detail, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, "heading:move", source)
		assert.Contains(t, detail, "target_project")
		assert.Equal(t, "not found", errMsg)
	})

	t.Run("no-op when closed", func(t *testing.T) {
		Close()
		// Must not panic with no logger open.
		Log(Entry{Source: "project:new", Action: "create"})
		Event("project:new", "create").Write(nil)
	})
}
