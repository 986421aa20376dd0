// subheadings.go implements subheading operations, including the blank
// sentinel. Sentences cannot hang directly off a heading; a subheading with
// an empty name acts as their container and always ranks first. At most one
// blank subheading exists per heading, enforced here rather than in the
// schema so ordinary name duplicates remain legal.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSubheading appends a subheading at the end of the heading's list.
// Creating with an empty name is the blank sentinel case: if the heading
// already has one it is returned as-is, otherwise a new blank subheading
// takes rank 1 and every existing sibling shifts down.
func (s *SQLiteStore) CreateSubheading(ctx context.Context, headingID int64, name string) (*Subheading, error) {
	var sub *Subheading
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if err := headingExists(ctx, tx, headingID); err != nil {
			return err
		}

		if name == "" {
			existing, err := blankSubheading(ctx, tx, headingID)
			if err != nil {
				return err
			}
			if existing != nil {
				sub = existing
				return nil
			}
			if err := openGap(ctx, tx, subheadingGroup, headingID, 1); err != nil {
				return err
			}
			sub, err = insertSubheading(ctx, tx, headingID, "", 1)
			if err != nil {
				return err
			}
			return touchProjectOfHeading(ctx, tx, headingID)
		}

		rank, err := nextRank(ctx, tx, subheadingGroup, headingID)
		if err != nil {
			return err
		}
		sub, err = insertSubheading(ctx, tx, headingID, name, rank)
		if err != nil {
			return err
		}
		return touchProjectOfHeading(ctx, tx, headingID)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// SubheadingByID fetches a single subheading, ErrNotFound when missing.
func (s *SQLiteStore) SubheadingByID(ctx context.Context, id int64) (*Subheading, error) {
	return subheadingByID(ctx, s.db, id)
}

func subheadingByID(ctx context.Context, q querier, id int64) (*Subheading, error) {
	var sub Subheading
	err := q.QueryRowContext(ctx,
		`SELECT id, heading_id, name, sort_order FROM subheadings WHERE id = ?`, id).
		Scan(&sub.ID, &sub.HeadingID, &sub.Name, &sub.SortOrder)
	if err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

// ListSubheadings returns a heading's subheadings in display order. A blank
// sentinel, when present, is first.
func (s *SQLiteStore) ListSubheadings(ctx context.Context, headingID int64) ([]Subheading, error) {
	return listSubheadings(ctx, s.db, headingID)
}

func listSubheadings(ctx context.Context, q querier, headingID int64) ([]Subheading, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, heading_id, name, sort_order FROM subheadings
		 WHERE heading_id = ? ORDER BY sort_order`, headingID)
	if err != nil {
		return nil, fmt.Errorf("list subheadings: %w", err)
	}
	defer rows.Close()

	var subs []Subheading
	for rows.Next() {
		var sub Subheading
		if err := rows.Scan(&sub.ID, &sub.HeadingID, &sub.Name, &sub.SortOrder); err != nil {
			return nil, fmt.Errorf("scan subheading: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// RenameSubheading changes a subheading's name in place without reordering,
// even when the rename crosses the blank boundary. Renaming to "" fails if
// the heading already has a blank subheading.
func (s *SQLiteStore) RenameSubheading(ctx context.Context, id int64, name string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		sub, err := subheadingByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if name == "" && !sub.Blank() {
			existing, err := blankSubheading(ctx, tx, sub.HeadingID)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("heading already has an unnamed subheading")
			}
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE subheadings SET name = ? WHERE id = ?`, name, id); err != nil {
			return fmt.Errorf("rename subheading: %w", err)
		}
		return touchProjectOfHeading(ctx, tx, sub.HeadingID)
	})
}

// MoveSubheading repositions a subheading. Within the same heading it
// relocates to targetRank (clamped); across headings it reattaches at the
// end of the target and the source ranks compact. A blank subheading cannot
// move into a heading that already has one.
func (s *SQLiteStore) MoveSubheading(ctx context.Context, id, targetHeadingID int64, targetRank int) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		sub, err := subheadingByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if sub.HeadingID == targetHeadingID {
			max, err := maxRank(ctx, tx, subheadingGroup, sub.HeadingID)
			if err != nil {
				return err
			}
			if err := relocate(ctx, tx, subheadingGroup, sub.HeadingID, id, sub.SortOrder, clampRank(targetRank, max)); err != nil {
				return err
			}
			return touchProjectOfHeading(ctx, tx, sub.HeadingID)
		}

		if err := headingExists(ctx, tx, targetHeadingID); err != nil {
			return err
		}
		if sub.Blank() {
			existing, err := blankSubheading(ctx, tx, targetHeadingID)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("target heading already has an unnamed subheading")
			}
		}
		rank, err := nextRank(ctx, tx, subheadingGroup, targetHeadingID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE subheadings SET heading_id = ?, sort_order = ? WHERE id = ?`,
			targetHeadingID, rank, id); err != nil {
			return fmt.Errorf("reattach subheading: %w", err)
		}
		if err := closeGap(ctx, tx, subheadingGroup, sub.HeadingID, sub.SortOrder); err != nil {
			return err
		}
		if err := touchProjectOfHeading(ctx, tx, sub.HeadingID); err != nil {
			return err
		}
		return touchProjectOfHeading(ctx, tx, targetHeadingID)
	})
}

// blankSubheading returns the heading's blank sentinel, or nil when it has
// none.
func blankSubheading(ctx context.Context, q querier, headingID int64) (*Subheading, error) {
	var sub Subheading
	err := q.QueryRowContext(ctx,
		`SELECT id, heading_id, name, sort_order FROM subheadings
		 WHERE heading_id = ? AND name = ''`, headingID).
		Scan(&sub.ID, &sub.HeadingID, &sub.Name, &sub.SortOrder)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blank subheading: %w", err)
	}
	return &sub, nil
}

func insertSubheading(ctx context.Context, tx *sql.Tx, headingID int64, name string, rank int) (*Subheading, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO subheadings (heading_id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
		headingID, name, rank, now())
	if err != nil {
		return nil, fmt.Errorf("insert subheading: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("subheading id: %w", err)
	}
	return &Subheading{ID: id, HeadingID: headingID, Name: name, SortOrder: rank}, nil
}

func headingExists(ctx context.Context, q querier, headingID int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM headings WHERE id = ?`, headingID).Scan(&one)
	return notFound(err)
}
