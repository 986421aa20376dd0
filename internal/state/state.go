// Package state persists the editing session between invocations: which
// project is active and which headings were collapsed in the last view.
// It lives in .outl/state.yaml next to the database. The repository layer
// never reads it; commands load it explicitly and pass ids onward.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the session state filename inside the .outl directory.
const File = "state.yaml"

// ErrNoActiveProject is returned when a command needs an active project
// and none has been selected.
var ErrNoActiveProject = errors.New("no active project (run 'outl project use <name>')")

// State is the persisted session.
type State struct {
	ActiveProjectID   int64   `yaml:"active_project_id,omitempty"`
	ActiveProjectName string  `yaml:"active_project_name,omitempty"`
	CollapsedHeadings []int64 `yaml:"collapsed_headings,omitempty"`

	path string
}

// Load reads the session state from the given .outl directory. A missing
// file is a fresh session, not an error.
func Load(outlDir string) (*State, error) {
	path := filepath.Join(outlDir, File)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &State{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session state: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("malformed session state %s: %w", path, err)
	}
	st.path = path
	return &st, nil
}

// Save writes the session state back to where it was loaded from.
func (s *State) Save() error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// SetActive records the active project.
func (s *State) SetActive(id int64, name string) {
	s.ActiveProjectID = id
	s.ActiveProjectName = name
}

// ClearActive drops the active project, e.g. after it is deleted.
func (s *State) ClearActive() {
	s.ActiveProjectID = 0
	s.ActiveProjectName = ""
	s.CollapsedHeadings = nil
}

// Active returns the active project id, or ErrNoActiveProject.
func (s *State) Active() (int64, error) {
	if s.ActiveProjectID == 0 {
		return 0, ErrNoActiveProject
	}
	return s.ActiveProjectID, nil
}

// ToggleCollapsed flips a heading's collapsed flag and reports the new
// value.
func (s *State) ToggleCollapsed(headingID int64) bool {
	for i, id := range s.CollapsedHeadings {
		if id == headingID {
			s.CollapsedHeadings = append(s.CollapsedHeadings[:i], s.CollapsedHeadings[i+1:]...)
			return false
		}
	}
	s.CollapsedHeadings = append(s.CollapsedHeadings, headingID)
	return true
}

// Collapsed reports whether a heading is collapsed.
func (s *State) Collapsed(headingID int64) bool {
	for _, id := range s.CollapsedHeadings {
		if id == headingID {
			return true
		}
	}
	return false
}
