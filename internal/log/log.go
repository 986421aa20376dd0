// Package log provides centralised audit logging for outl operations.
// Logs are stored in ~/.outl/log/outl-log.db and track commands across
// repositories.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("sentence:add", "add").
//		Author(cmd.Author()).
//		Project(p.Name).
//		Write(err)
//
//	log.Event("heading:move", "move").
//		Author(cmd.Author()).
//		Project(p.Name).
//		Detail("target_project", targetID).
//		Write(err)
//
// The source parameter follows the format "{group}:{command}", e.g.
// "project:new", "sentence:delete", "export:text".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source  string // e.g., "sentence:add", "heading:move"
	Author  string // who performed the action
	Action  string // verb: add, edit, delete, move, copy, export, etc.
	Project string // project name the operation targeted
	Line    int    // flattened line number, for line-addressed commands

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Project sets the project name this operation affects.
func (b *Builder) Project(name string) *Builder {
	b.entry.Project = name
	return b
}

// Line sets the flattened line number for line-addressed commands.
func (b *Builder) Line(n int) *Builder {
	b.entry.Line = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetRepo sets the repository identifier for subsequent log entries.
// The dir should be the absolute path to the .outl directory.
func SetRepo(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.repo = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
