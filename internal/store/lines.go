// lines.go implements 1-based line addressing over a project's flattened
// sentence sequence. The display order is heading rank, then subheading
// rank, then sentence rank; line numbers are positions in that sequence and
// are recomputed on every read, never stored.

package store

import (
	"context"
	"fmt"
)

const linesQuery = `
	SELECT s.id, sh.id, sh.name, h.id, h.name, s.content
	FROM sentences s
	JOIN subheadings sh ON sh.id = s.subheading_id
	JOIN headings h ON h.id = sh.heading_id
	WHERE h.project_id = ?
	ORDER BY h.sort_order, sh.sort_order, s.sort_order`

// Lines returns every sentence of the project in display order, numbered
// from 1.
func (s *SQLiteStore) Lines(ctx context.Context, projectID int64) ([]Line, error) {
	return queryLines(ctx, s.db, projectID)
}

func queryLines(ctx context.Context, q querier, projectID int64) ([]Line, error) {
	rows, err := q.QueryContext(ctx, linesQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.SentenceID, &l.SubheadingID, &l.SubheadingName, &l.HeadingID, &l.HeadingName, &l.Content); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		l.Number = len(lines) + 1
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// LineCount returns the number of sentences in the project.
func (s *SQLiteStore) LineCount(ctx context.Context, projectID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM sentences s
		 JOIN subheadings sh ON sh.id = s.subheading_id
		 JOIN headings h ON h.id = sh.heading_id
		 WHERE h.project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count lines: %w", err)
	}
	return count, nil
}

// SentenceAtLine resolves a 1-based line number to the sentence at that
// position, with its owning subheading and heading. Returns ErrLineRange
// for numbers outside [1, line count].
func (s *SQLiteStore) SentenceAtLine(ctx context.Context, projectID int64, lineNumber int) (*Line, error) {
	return lineAt(ctx, s.db, projectID, lineNumber)
}

// lineAt is SentenceAtLine over an arbitrary querier so rank-shifting
// transactions can resolve a line inside themselves. OFFSET keeps the walk
// in SQL; line counts are small enough that this is never the bottleneck.
func lineAt(ctx context.Context, q querier, projectID int64, lineNumber int) (*Line, error) {
	if lineNumber < 1 {
		return nil, ErrLineRange
	}
	var l Line
	err := q.QueryRowContext(ctx, linesQuery+` LIMIT 1 OFFSET ?`, projectID, lineNumber-1).
		Scan(&l.SentenceID, &l.SubheadingID, &l.SubheadingName, &l.HeadingID, &l.HeadingName, &l.Content)
	if err != nil {
		if notFound(err) == ErrNotFound {
			return nil, ErrLineRange
		}
		return nil, fmt.Errorf("line %d: %w", lineNumber, err)
	}
	l.Number = lineNumber
	return &l, nil
}
