// rank.go implements sibling ordering as dense 1-based sort_order ranks.
//
// Headings, subheadings and sentences all maintain the same invariant: the
// ranks of the children of one parent are exactly 1..N with no gaps or
// duplicates. The helpers here are parametrized by a sibling group (table
// plus parent column) so every level shares one tested shift implementation.
//
// Ranks are relative positions, never stored line numbers. Any flattened
// numbering is recomputed from ranks on demand.

package store

import (
	"context"
	"fmt"
)

// group identifies one sibling collection: the table holding the rows and
// the foreign key column naming their shared parent.
type group struct {
	table     string
	parentCol string
}

var (
	headingGroup    = group{table: "headings", parentCol: "project_id"}
	subheadingGroup = group{table: "subheadings", parentCol: "heading_id"}
	sentenceGroup   = group{table: "sentences", parentCol: "subheading_id"}
)

// nextRank returns the append position for a new child of parentID:
// one past the current maximum, or 1 for an empty parent.
func nextRank(ctx context.Context, q querier, g group, parentID int64) (int, error) {
	var rank int
	query := fmt.Sprintf(
		`SELECT COALESCE(MAX(sort_order), 0) + 1 FROM %s WHERE %s = ?`,
		g.table, g.parentCol)
	if err := q.QueryRowContext(ctx, query, parentID).Scan(&rank); err != nil {
		return 0, fmt.Errorf("next rank: %w", err)
	}
	return rank, nil
}

// maxRank returns the highest rank under parentID, 0 when empty.
func maxRank(ctx context.Context, q querier, g group, parentID int64) (int, error) {
	n, err := nextRank(ctx, q, g, parentID)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// openGap shifts every sibling at or above pos up by one, making room to
// insert a row at pos.
func openGap(ctx context.Context, q querier, g group, parentID int64, pos int) error {
	query := fmt.Sprintf(
		`UPDATE %s SET sort_order = sort_order + 1 WHERE %s = ? AND sort_order >= ?`,
		g.table, g.parentCol)
	if _, err := q.ExecContext(ctx, query, parentID, pos); err != nil {
		return fmt.Errorf("open gap at %d: %w", pos, err)
	}
	return nil
}

// closeGap shifts every sibling above pos down by one, compacting the
// sequence after a removal at pos.
func closeGap(ctx context.Context, q querier, g group, parentID int64, pos int) error {
	query := fmt.Sprintf(
		`UPDATE %s SET sort_order = sort_order - 1 WHERE %s = ? AND sort_order > ?`,
		g.table, g.parentCol)
	if _, err := q.ExecContext(ctx, query, parentID, pos); err != nil {
		return fmt.Errorf("close gap at %d: %w", pos, err)
	}
	return nil
}

// relocate moves the row with id from rank src to rank dst within the same
// parent, shifting the rows in between by one in the opposite direction.
// A no-op when src == dst.
func relocate(ctx context.Context, q querier, g group, parentID, id int64, src, dst int) error {
	if src == dst {
		return nil
	}
	var query string
	var args []any
	if dst < src {
		// Moving up: everything in [dst, src) steps down one slot.
		query = fmt.Sprintf(
			`UPDATE %s SET sort_order = sort_order + 1 WHERE %s = ? AND sort_order >= ? AND sort_order < ?`,
			g.table, g.parentCol)
		args = []any{parentID, dst, src}
	} else {
		// Moving down: everything in (src, dst] steps up one slot.
		query = fmt.Sprintf(
			`UPDATE %s SET sort_order = sort_order - 1 WHERE %s = ? AND sort_order > ? AND sort_order <= ?`,
			g.table, g.parentCol)
		args = []any{parentID, src, dst}
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("shift ranks %d to %d: %w", src, dst, err)
	}
	set := fmt.Sprintf(`UPDATE %s SET sort_order = ? WHERE id = ?`, g.table)
	if _, err := q.ExecContext(ctx, set, dst, id); err != nil {
		return fmt.Errorf("set rank %d: %w", dst, err)
	}
	return nil
}

// clampRank pins a requested rank into the valid range [1, max]. Out of
// range targets land at the nearest end rather than erroring; the original
// interactive editor treats "move to 99" as "move last".
func clampRank(rank, max int) int {
	if rank < 1 {
		return 1
	}
	if rank > max {
		return max
	}
	return rank
}
