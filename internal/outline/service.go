// service.go implements the command contract over the repository: heading
// and subheading commands with the sequential creation policy, sentence
// commands addressed by flattened line number, and the cross-project copy
// and move operations.

package outline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/outl/internal/store"
)

var (
	// ErrOutOfSequence rejects creating a heading or subheading key ahead
	// of the next available one. Checked before touching storage.
	ErrOutOfSequence = errors.New("key out of sequence")
	// ErrNoSelection means a sentence command ran with no heading selected.
	ErrNoSelection = errors.New("no heading selected")
)

// Selection is the editor's cursor: the heading and optional subheading
// that sentence commands target. It lives with the caller, never the
// repository.
type Selection struct {
	HeadingID      int64
	HeadingName    string
	SubheadingID   int64
	SubheadingName string
}

// SelectHeading points the selection at a heading and clears the
// subheading.
func (sel *Selection) SelectHeading(h store.Heading) {
	sel.HeadingID = h.ID
	sel.HeadingName = h.Name
	sel.SubheadingID = 0
	sel.SubheadingName = ""
}

// SelectSubheading points the selection at a subheading and its heading.
func (sel *Selection) SelectSubheading(h store.Heading, sub store.Subheading) {
	sel.HeadingID = h.ID
	sel.HeadingName = h.Name
	sel.SubheadingID = sub.ID
	sel.SubheadingName = sub.Name
}

// Action reports what a heading or subheading command did.
type Action int

const (
	Selected Action = iota
	Created
	Renamed
)

// Service interprets editor commands against a Store.
type Service struct {
	store store.Store
}

// New returns a Service over the given store.
func New(st store.Store) *Service {
	return &Service{store: st}
}

// Store exposes the underlying repository for read-only callers.
func (s *Service) Store() store.Store {
	return s.store
}

// HeadingCommand handles `h<key>` and `h<key> <name>`. An existing key
// selects, or renames when a name is given. A missing key creates, but
// only the next sequential key: creating 'c' when only 'a' exists is
// rejected with ErrOutOfSequence.
func (s *Service) HeadingCommand(ctx context.Context, projectID int64, key, name string, sel *Selection) (Action, error) {
	m, err := BuildKeyMap(ctx, s.store, projectID)
	if err != nil {
		return 0, err
	}

	if h, ok := m.Heading(key); ok {
		if name == "" {
			sel.SelectHeading(h)
			return Selected, nil
		}
		if err := s.store.RenameHeading(ctx, h.ID, name); err != nil {
			return 0, err
		}
		h.Name = name
		sel.SelectHeading(h)
		return Renamed, nil
	}

	if name == "" {
		return 0, fmt.Errorf("heading [%s] doesn't exist, use 'h%s <name>' to create it", key, key)
	}
	if next := m.NextHeadingKey(); key != next {
		return 0, fmt.Errorf("next heading should be '%s': %w", next, ErrOutOfSequence)
	}
	h, err := s.store.CreateHeading(ctx, projectID, name)
	if err != nil {
		return 0, err
	}
	sel.SelectHeading(*h)
	return Created, nil
}

// SubheadingCommand handles `h<key><n>` and `h<key><n> <name>`. The
// heading must already exist. An existing index selects or renames; a new
// index creates, but only the next sequential one.
func (s *Service) SubheadingCommand(ctx context.Context, projectID int64, headingKey string, subIndex int, name string, sel *Selection) (Action, error) {
	m, err := BuildKeyMap(ctx, s.store, projectID)
	if err != nil {
		return 0, err
	}

	h, ok := m.Heading(headingKey)
	if !ok {
		return 0, fmt.Errorf("heading [%s] doesn't exist, create it first", headingKey)
	}

	if sub, ok := m.Subheading(SubheadingKey(headingKey, subIndex)); ok {
		if name == "" {
			sel.SelectSubheading(h, sub)
			return Selected, nil
		}
		if err := s.store.RenameSubheading(ctx, sub.ID, name); err != nil {
			return 0, err
		}
		sub.Name = name
		sel.SelectSubheading(h, sub)
		return Renamed, nil
	}

	if name == "" {
		return 0, fmt.Errorf("subheading [%s%d] doesn't exist, use 'h%s%d <name>' to create it",
			headingKey, subIndex, headingKey, subIndex)
	}
	if next := m.NextSubIndex(headingKey); subIndex != next {
		return 0, fmt.Errorf("next subheading should be '%s%d': %w", headingKey, next, ErrOutOfSequence)
	}
	sub, err := s.store.CreateSubheading(ctx, h.ID, name)
	if err != nil {
		return 0, err
	}
	sel.SelectSubheading(h, *sub)
	return Created, nil
}

// AddSentence handles `+ <text>`. With a subheading selected the sentence
// appends there. With only a heading selected it lands in the heading's
// blank subheading, created on demand.
func (s *Service) AddSentence(ctx context.Context, sel *Selection, text string) (*store.Sentence, error) {
	if sel.SubheadingID != 0 {
		return s.store.AddSentence(ctx, sel.SubheadingID, text)
	}
	if sel.HeadingID == 0 {
		return nil, ErrNoSelection
	}
	blank, err := s.store.CreateSubheading(ctx, sel.HeadingID, "")
	if err != nil {
		return nil, err
	}
	return s.store.AddSentence(ctx, blank.ID, text)
}

// InsertBefore handles `i <line#> <text>`.
func (s *Service) InsertBefore(ctx context.Context, projectID int64, lineNumber int, text string) (*store.Sentence, error) {
	return s.store.InsertSentenceBefore(ctx, projectID, lineNumber, text)
}

// LineAt resolves a line number to its sentence with full context, for the
// edit and delete commands.
func (s *Service) LineAt(ctx context.Context, projectID int64, lineNumber int) (*store.Line, error) {
	return s.store.SentenceAtLine(ctx, projectID, lineNumber)
}

// EditLine handles `e <line#>`: the caller obtains the current content via
// LineAt, runs the editor, and submits the result here.
func (s *Service) EditLine(ctx context.Context, projectID int64, lineNumber int, content string) error {
	l, err := s.store.SentenceAtLine(ctx, projectID, lineNumber)
	if err != nil {
		return err
	}
	return s.store.UpdateSentence(ctx, l.SentenceID, content)
}

// DeleteLine handles `d <line#>`. The selection moves to the deleted
// sentence's heading and subheading so follow-up adds land nearby.
func (s *Service) DeleteLine(ctx context.Context, projectID int64, lineNumber int, sel *Selection) error {
	l, err := s.store.SentenceAtLine(ctx, projectID, lineNumber)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSentence(ctx, l.SentenceID); err != nil {
		return err
	}
	if sel != nil {
		sel.HeadingID = l.HeadingID
		sel.HeadingName = l.HeadingName
		sel.SubheadingID = l.SubheadingID
		sel.SubheadingName = l.SubheadingName
	}
	return nil
}

// CopySentence handles `cs`, MoveSentence `ms`.
func (s *Service) CopySentence(ctx context.Context, sentenceID, targetSubheadingID int64) (*store.Sentence, error) {
	return s.store.CopySentence(ctx, sentenceID, targetSubheadingID)
}

func (s *Service) MoveSentence(ctx context.Context, sentenceID, targetSubheadingID int64) error {
	return s.store.MoveSentence(ctx, sentenceID, targetSubheadingID)
}

// CopyHeadingBefore handles `ch`: deep copy within a project.
func (s *Service) CopyHeadingBefore(ctx context.Context, headingID, beforeHeadingID int64) (*store.Heading, error) {
	return s.store.CopyHeadingBefore(ctx, headingID, beforeHeadingID)
}

// CopyHeadingToProject handles `cp`.
func (s *Service) CopyHeadingToProject(ctx context.Context, headingID, targetProjectID int64) (*store.Heading, error) {
	return s.store.CopyHeadingToProject(ctx, headingID, targetProjectID)
}

// MoveHeading handles `mh`: reattach a heading to another project. The
// target must differ from the heading's current project; reordering
// within a project is a ranked store move, not an mh.
func (s *Service) MoveHeading(ctx context.Context, headingID, targetProjectID int64) error {
	h, err := s.store.HeadingByID(ctx, headingID)
	if err != nil {
		return err
	}
	if h.ProjectID == targetProjectID {
		return fmt.Errorf("heading is already in that project")
	}
	return s.store.MoveHeading(ctx, headingID, targetProjectID, 0)
}

// MoveSubheading handles `msh`: reattach a subheading to another heading.
func (s *Service) MoveSubheading(ctx context.Context, subheadingID, targetHeadingID int64) error {
	sub, err := s.store.SubheadingByID(ctx, subheadingID)
	if err != nil {
		return err
	}
	if sub.HeadingID == targetHeadingID {
		return fmt.Errorf("subheading is already under that heading")
	}
	return s.store.MoveSubheading(ctx, subheadingID, targetHeadingID, 0)
}

// DeleteHeading handles `dh`.
func (s *Service) DeleteHeading(ctx context.Context, headingID int64) error {
	return s.store.DeleteHeading(ctx, headingID)
}
