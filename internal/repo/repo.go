// Package repo provides repository initialisation and discovery for outl.
//
// An outl repository is a .outl directory containing the outlines database
// and session state. This package handles:
//   - Initialising new repositories (creating .outl/ and the database)
//   - Discovering existing repositories by walking up the directory tree
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .outl directory containing the database is
// found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/outl/internal/store"
)

const (
	// Dir is the directory name for the outl repository.
	Dir = ".outl"
	// DBFile is the database filename.
	DBFile = "outlines.db"
)

// ErrNotInitialised is returned when no outl repository is found.
var ErrNotInitialised = errors.New("outl not initialised (run 'outl init')")

// Init initialises a new outl repository in dir (current directory when
// empty). With force an existing database is removed and recreated.
func Init(force bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	outlDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(outlDir, DBFile)

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFile)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(outlDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Session state changes constantly and is machine-local; keep it out
	// of version control even when the database is committed.
	gitignore := filepath.Join(outlDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		content := `# outl - local session state and config
state.yaml
config.yaml
`
		if err := os.WriteFile(gitignore, []byte(content), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for the .outl database.
// Returns the full path to the database if found.
func Discover() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, DBFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .outl directory, walking up the tree.
// Returns the full path to the .outl directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		outlDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(outlDir); err == nil && info.IsDir() {
			return outlDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}
