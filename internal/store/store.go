// Package store defines outline persistence types and the Store
// interface. Implementations handle the actual database operations
// while consumers depend only on this interface, enabling testing and
// alternative backends.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Project is the root of an outline hierarchy. Projects are not
// sibling-ranked; listings order by UpdatedAt descending, which is
// refreshed on every descendant mutation.
type Project struct {
	ID        int64
	Name      string
	CreatedAt int64 // Unix timestamp of creation
	UpdatedAt int64 // Unix timestamp of last mutation anywhere in the tree
}

// Heading is a top-level outline section. SortOrder is a dense 1-based
// rank among headings of the same project.
type Heading struct {
	ID        int64
	ProjectID int64
	Name      string
	SortOrder int
}

// Subheading is a second-level section. Name may be "" — the blank
// subheading holds sentences attached directly to the heading and
// always ranks first when present.
type Subheading struct {
	ID        int64
	HeadingID int64
	Name      string
	SortOrder int
}

// Blank reports whether this is the nameless sentinel subheading.
func (s Subheading) Blank() bool { return s.Name == "" }

// Sentence is a leaf content item.
type Sentence struct {
	ID           int64
	SubheadingID int64
	Content      string
	SortOrder    int
	CreatedAt    int64
	UpdatedAt    int64
}

// Line is one row of the flattened line index: a sentence with the
// full context needed by line-addressed commands. Number is the
// 1-based position within the project's display order.
type Line struct {
	Number         int
	SentenceID     int64
	SubheadingID   int64
	SubheadingName string
	HeadingID      int64
	HeadingName    string
	Content        string
}

// SentenceContext locates a sentence within the whole hierarchy,
// mirroring what cross-project copy/move prompts need to display.
type SentenceContext struct {
	Sentence
	SubheadingName string
	HeadingID      int64
	HeadingName    string
	ProjectID      int64
	ProjectName    string
}

// SubheadingNode and HeadingNode form the read-only ordered tree
// consumed by exporters.
type SubheadingNode struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Sentences []string `json:"sentences"`
}

type HeadingNode struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Subheadings []SubheadingNode `json:"subheadings"`
}

// ProjectTree is a project's full content in display order.
type ProjectTree struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Headings []HeadingNode `json:"headings"`
}

var (
	// ErrNotFound indicates the requested entity or line number does not
	// exist. Callers convert this into a user-facing message; it is
	// never fatal.
	ErrNotFound = errors.New("not found")
	// ErrNameTaken indicates a project name collision.
	ErrNameTaken = errors.New("project name already exists")
	// ErrLineRange indicates a line number outside [1, line count].
	ErrLineRange = errors.New("line number out of range")
)

// Projects defines project-level operations.
type Projects interface {
	CreateProject(ctx context.Context, name string) (*Project, error)
	ProjectByID(ctx context.Context, id int64) (*Project, error)
	ProjectByName(ctx context.Context, name string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// Headings defines heading-level operations.
type Headings interface {
	CreateHeading(ctx context.Context, projectID int64, name string) (*Heading, error)
	HeadingByID(ctx context.Context, id int64) (*Heading, error)
	ListHeadings(ctx context.Context, projectID int64) ([]Heading, error)
	RenameHeading(ctx context.Context, id int64, name string) error
	MoveHeading(ctx context.Context, id, targetProjectID int64, targetRank int) error
	CopyHeadingBefore(ctx context.Context, id, beforeID int64) (*Heading, error)
	CopyHeadingToProject(ctx context.Context, id, targetProjectID int64) (*Heading, error)
	DeleteHeading(ctx context.Context, id int64) error
}

// Subheadings defines subheading-level operations.
type Subheadings interface {
	CreateSubheading(ctx context.Context, headingID int64, name string) (*Subheading, error)
	SubheadingByID(ctx context.Context, id int64) (*Subheading, error)
	ListSubheadings(ctx context.Context, headingID int64) ([]Subheading, error)
	RenameSubheading(ctx context.Context, id int64, name string) error
	MoveSubheading(ctx context.Context, id, targetHeadingID int64, targetRank int) error
}

// Sentences defines sentence-level operations, including the
// line-addressed ones.
type Sentences interface {
	AddSentence(ctx context.Context, subheadingID int64, content string) (*Sentence, error)
	InsertSentenceBefore(ctx context.Context, projectID int64, lineNumber int, content string) (*Sentence, error)
	UpdateSentence(ctx context.Context, id int64, content string) error
	DeleteSentence(ctx context.Context, id int64) error
	MoveSentence(ctx context.Context, id, targetSubheadingID int64) error
	CopySentence(ctx context.Context, id, targetSubheadingID int64) (*Sentence, error)
	ListSentences(ctx context.Context, subheadingID int64) ([]Sentence, error)
	SentenceContextByID(ctx context.Context, id int64) (*SentenceContext, error)
}

// LineIndex exposes 1-based line addressing over a project's flattened
// sentence sequence. Always recomputed from live ranks, never cached.
type LineIndex interface {
	Lines(ctx context.Context, projectID int64) ([]Line, error)
	LineCount(ctx context.Context, projectID int64) (int, error)
	SentenceAtLine(ctx context.Context, projectID int64, lineNumber int) (*Line, error)
}

// Reader provides the export-facing read model.
type Reader interface {
	OrderedContent(ctx context.Context, projectID int64) (*ProjectTree, error)
	Stats(ctx context.Context) (*Stats, error)
	CheckRanks(ctx context.Context) ([]RankGap, error)
}

// Maintainer defines lifecycle operations.
type Maintainer interface {
	Close() error
	DB() *sql.DB
}

// Store is the full persistence interface for outlines.
type Store interface {
	Projects
	Headings
	Subheadings
	Sentences
	LineIndex
	Reader
	Maintainer
}

// now returns the current Unix timestamp. Indirected for tests that
// need deterministic ordering.
var now = func() int64 { return time.Now().Unix() }
