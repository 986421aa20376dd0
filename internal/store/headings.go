// headings.go implements heading operations: creation, renaming, sibling
// reordering, cross-project moves and deep copies. Every write keeps the
// dense rank invariant for both the source and destination projects.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateHeading appends a heading at the end of the project's heading list.
// Duplicate names within a project are allowed; headings are addressed by
// position, not name.
func (s *SQLiteStore) CreateHeading(ctx context.Context, projectID int64, name string) (*Heading, error) {
	var h *Heading
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if err := projectExists(ctx, tx, projectID); err != nil {
			return err
		}
		rank, err := nextRank(ctx, tx, headingGroup, projectID)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO headings (project_id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
			projectID, name, rank, now())
		if err != nil {
			return fmt.Errorf("insert heading: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("heading id: %w", err)
		}
		h = &Heading{ID: id, ProjectID: projectID, Name: name, SortOrder: rank}
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// HeadingByID fetches a single heading, ErrNotFound when missing.
func (s *SQLiteStore) HeadingByID(ctx context.Context, id int64) (*Heading, error) {
	return headingByID(ctx, s.db, id)
}

func headingByID(ctx context.Context, q querier, id int64) (*Heading, error) {
	var h Heading
	err := q.QueryRowContext(ctx,
		`SELECT id, project_id, name, sort_order FROM headings WHERE id = ?`, id).
		Scan(&h.ID, &h.ProjectID, &h.Name, &h.SortOrder)
	if err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

// ListHeadings returns a project's headings in display order.
func (s *SQLiteStore) ListHeadings(ctx context.Context, projectID int64) ([]Heading, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, name, sort_order FROM headings
		 WHERE project_id = ? ORDER BY sort_order`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list headings: %w", err)
	}
	defer rows.Close()

	var headings []Heading
	for rows.Next() {
		var h Heading
		if err := rows.Scan(&h.ID, &h.ProjectID, &h.Name, &h.SortOrder); err != nil {
			return nil, fmt.Errorf("scan heading: %w", err)
		}
		headings = append(headings, h)
	}
	return headings, rows.Err()
}

// RenameHeading changes a heading's name in place. The heading keeps its
// rank; renaming never reorders siblings.
func (s *SQLiteStore) RenameHeading(ctx context.Context, id int64, name string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE headings SET name = ? WHERE id = ?`, name, id)
		if err != nil {
			return fmt.Errorf("rename heading: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rename heading: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return touchProjectOfHeading(ctx, tx, id)
	})
}

// MoveHeading repositions a heading. Within the same project it relocates
// to targetRank (clamped to the valid range), shifting the siblings in
// between. Across projects the heading and its whole subtree reattach at
// the end of the target and the source ranks compact; targetRank is
// ignored for cross-project moves.
func (s *SQLiteStore) MoveHeading(ctx context.Context, id, targetProjectID int64, targetRank int) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		h, err := headingByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if h.ProjectID == targetProjectID {
			max, err := maxRank(ctx, tx, headingGroup, h.ProjectID)
			if err != nil {
				return err
			}
			if err := relocate(ctx, tx, headingGroup, h.ProjectID, id, h.SortOrder, clampRank(targetRank, max)); err != nil {
				return err
			}
			return touchProject(ctx, tx, h.ProjectID)
		}

		if err := projectExists(ctx, tx, targetProjectID); err != nil {
			return err
		}
		rank, err := nextRank(ctx, tx, headingGroup, targetProjectID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE headings SET project_id = ?, sort_order = ? WHERE id = ?`,
			targetProjectID, rank, id); err != nil {
			return fmt.Errorf("reattach heading: %w", err)
		}
		if err := closeGap(ctx, tx, headingGroup, h.ProjectID, h.SortOrder); err != nil {
			return err
		}
		if err := touchProject(ctx, tx, h.ProjectID); err != nil {
			return err
		}
		return touchProject(ctx, tx, targetProjectID)
	})
}

// CopyHeadingBefore deep-copies a heading, inserting the copy immediately
// before the sibling beforeID in the same project. Both headings must
// belong to the same project.
func (s *SQLiteStore) CopyHeadingBefore(ctx context.Context, id, beforeID int64) (*Heading, error) {
	var copied *Heading
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		src, err := headingByID(ctx, tx, id)
		if err != nil {
			return err
		}
		before, err := headingByID(ctx, tx, beforeID)
		if err != nil {
			return err
		}
		if src.ProjectID != before.ProjectID {
			return fmt.Errorf("headings %d and %d belong to different projects", id, beforeID)
		}
		if err := openGap(ctx, tx, headingGroup, src.ProjectID, before.SortOrder); err != nil {
			return err
		}
		copied, err = copyHeadingTree(ctx, tx, src, src.ProjectID, before.SortOrder)
		if err != nil {
			return err
		}
		return touchProject(ctx, tx, src.ProjectID)
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// CopyHeadingToProject deep-copies a heading to the end of another project.
func (s *SQLiteStore) CopyHeadingToProject(ctx context.Context, id, targetProjectID int64) (*Heading, error) {
	var copied *Heading
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		src, err := headingByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := projectExists(ctx, tx, targetProjectID); err != nil {
			return err
		}
		rank, err := nextRank(ctx, tx, headingGroup, targetProjectID)
		if err != nil {
			return err
		}
		copied, err = copyHeadingTree(ctx, tx, src, targetProjectID, rank)
		if err != nil {
			return err
		}
		return touchProject(ctx, tx, targetProjectID)
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// DeleteHeading removes a heading and its subtree, compacting the ranks of
// the siblings that followed it.
func (s *SQLiteStore) DeleteHeading(ctx context.Context, id int64) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		h, err := headingByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM headings WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete heading: %w", err)
		}
		if err := closeGap(ctx, tx, headingGroup, h.ProjectID, h.SortOrder); err != nil {
			return err
		}
		return touchProject(ctx, tx, h.ProjectID)
	})
}

// copyHeadingTree duplicates a heading row at the given project and rank,
// then duplicates its subheadings and sentences preserving their relative
// order. Caller has already opened a rank gap if one is needed.
func copyHeadingTree(ctx context.Context, tx *sql.Tx, src *Heading, projectID int64, rank int) (*Heading, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO headings (project_id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
		projectID, src.Name, rank, now())
	if err != nil {
		return nil, fmt.Errorf("copy heading: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("copy heading id: %w", err)
	}

	subs, err := listSubheadings(ctx, tx, src.ID)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		sres, err := tx.ExecContext(ctx,
			`INSERT INTO subheadings (heading_id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
			newID, sub.Name, sub.SortOrder, now())
		if err != nil {
			return nil, fmt.Errorf("copy subheading: %w", err)
		}
		newSubID, err := sres.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("copy subheading id: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sentences (subheading_id, content, sort_order, created_at, updated_at)
			 SELECT ?, content, sort_order, ?, ? FROM sentences WHERE subheading_id = ?`,
			newSubID, now(), now(), sub.ID); err != nil {
			return nil, fmt.Errorf("copy sentences: %w", err)
		}
	}

	return &Heading{ID: newID, ProjectID: projectID, Name: src.Name, SortOrder: rank}, nil
}

func projectExists(ctx context.Context, q querier, projectID int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, projectID).Scan(&one)
	return notFound(err)
}
