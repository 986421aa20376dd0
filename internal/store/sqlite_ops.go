// sqlite_ops.go provides SQLite connection management and low-level helpers.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver registration)
// from the outline logic. This is the only file that imports the SQLite
// driver, making it easier to swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// Foreign key enforcement must be switched on per connection; the cascade
// deletes that keep subtrees consistent depend on it.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent
// access. All rank maintenance runs inside transactions so the dense 1-based
// ordering invariant holds at every commit boundary.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check. If a method is missing or has the
// wrong signature, the build fails immediately with a clear error rather than
// failing at runtime when the method is called.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: Allows concurrent readers while writing. Without this, readers
	// block writers and vice versa. Trade-off: Creates -wal and -shm files
	// alongside the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Busy timeout: How long to wait when another connection holds a lock.
	// 5 seconds is generous - most operations complete in milliseconds.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Synchronous NORMAL: With WAL mode, NORMAL is safe against corruption.
	// FULL would fsync on every commit, which is ~10x slower. The only risk
	// with NORMAL is losing the last transaction on OS crash - acceptable for
	// an outline editor where users can re-run the command.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	// Foreign keys: SQLite ships with enforcement off. The ON DELETE CASCADE
	// clauses in the schema do nothing without this pragma.
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; the schema uses IF NOT EXISTS throughout.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for callers that need custom queries,
// such as the stats report.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// querier abstracts *sql.DB and *sql.Tx so rank helpers run either way.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// notFound converts sql.ErrNoRows to ErrNotFound for consistent error
// handling across entity lookups.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back;
// otherwise it is committed. Rollback is deferred to handle panics and early
// returns. Context cancellation aborts the transaction at the next database
// call.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
