// sentences.go implements sentence operations. Sentences are the leaves of
// the outline and the only level addressable by flattened line number, so
// the insert-before operation resolves its target through the line index
// before touching ranks.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// AddSentence appends a sentence at the end of the subheading's list.
func (s *SQLiteStore) AddSentence(ctx context.Context, subheadingID int64, content string) (*Sentence, error) {
	var sen *Sentence
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if err := subheadingExists(ctx, tx, subheadingID); err != nil {
			return err
		}
		rank, err := nextRank(ctx, tx, sentenceGroup, subheadingID)
		if err != nil {
			return err
		}
		sen, err = insertSentence(ctx, tx, subheadingID, content, rank)
		if err != nil {
			return err
		}
		return touchProjectOfSubheading(ctx, tx, subheadingID)
	})
	if err != nil {
		return nil, err
	}
	return sen, nil
}

// InsertSentenceBefore inserts a sentence so that it takes over the given
// line number, pushing the sentence currently at that line (and everything
// after it in the same subheading) down. The new sentence lands in the same
// subheading as the displaced one. Line numbers past the end return
// ErrLineRange; use AddSentence to append.
func (s *SQLiteStore) InsertSentenceBefore(ctx context.Context, projectID int64, lineNumber int, content string) (*Sentence, error) {
	var sen *Sentence
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		target, err := lineAt(ctx, tx, projectID, lineNumber)
		if err != nil {
			return err
		}
		var rank int
		err = tx.QueryRowContext(ctx,
			`SELECT sort_order FROM sentences WHERE id = ?`, target.SentenceID).Scan(&rank)
		if err != nil {
			return notFound(err)
		}
		if err := openGap(ctx, tx, sentenceGroup, target.SubheadingID, rank); err != nil {
			return err
		}
		sen, err = insertSentence(ctx, tx, target.SubheadingID, content, rank)
		if err != nil {
			return err
		}
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return nil, err
	}
	return sen, nil
}

// UpdateSentence replaces a sentence's content in place.
func (s *SQLiteStore) UpdateSentence(ctx context.Context, id int64, content string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE sentences SET content = ?, updated_at = ? WHERE id = ?`,
			content, now(), id)
		if err != nil {
			return fmt.Errorf("update sentence: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update sentence: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return touchProjectOfSentence(ctx, tx, id)
	})
}

// DeleteSentence removes a sentence and compacts its siblings' ranks.
func (s *SQLiteStore) DeleteSentence(ctx context.Context, id int64) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		sen, err := sentenceByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := touchProjectOfSentence(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sentences WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete sentence: %w", err)
		}
		return closeGap(ctx, tx, sentenceGroup, sen.SubheadingID, sen.SortOrder)
	})
}

// MoveSentence reattaches a sentence at the end of another subheading and
// compacts the ranks it left behind. Moving within the same subheading is a
// no-op append to the end.
func (s *SQLiteStore) MoveSentence(ctx context.Context, id, targetSubheadingID int64) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		sen, err := sentenceByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := subheadingExists(ctx, tx, targetSubheadingID); err != nil {
			return err
		}
		rank, err := nextRank(ctx, tx, sentenceGroup, targetSubheadingID)
		if err != nil {
			return err
		}
		if sen.SubheadingID == targetSubheadingID {
			// Appending within the same group: the row itself counts in
			// MAX, so the true end slot is one lower after removal.
			rank--
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE sentences SET subheading_id = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
			targetSubheadingID, rank, now(), id); err != nil {
			return fmt.Errorf("reattach sentence: %w", err)
		}
		if err := closeGapExcept(ctx, tx, sen.SubheadingID, sen.SortOrder, id); err != nil {
			return err
		}
		if err := touchProjectOfSubheading(ctx, tx, sen.SubheadingID); err != nil {
			return err
		}
		return touchProjectOfSubheading(ctx, tx, targetSubheadingID)
	})
}

// CopySentence duplicates a sentence at the end of another subheading.
func (s *SQLiteStore) CopySentence(ctx context.Context, id, targetSubheadingID int64) (*Sentence, error) {
	var sen *Sentence
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		src, err := sentenceByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := subheadingExists(ctx, tx, targetSubheadingID); err != nil {
			return err
		}
		rank, err := nextRank(ctx, tx, sentenceGroup, targetSubheadingID)
		if err != nil {
			return err
		}
		sen, err = insertSentence(ctx, tx, targetSubheadingID, src.Content, rank)
		if err != nil {
			return err
		}
		return touchProjectOfSubheading(ctx, tx, targetSubheadingID)
	})
	if err != nil {
		return nil, err
	}
	return sen, nil
}

// ListSentences returns a subheading's sentences in display order.
func (s *SQLiteStore) ListSentences(ctx context.Context, subheadingID int64) ([]Sentence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subheading_id, content, sort_order, created_at, updated_at
		 FROM sentences WHERE subheading_id = ? ORDER BY sort_order`, subheadingID)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}
	defer rows.Close()

	var sentences []Sentence
	for rows.Next() {
		var sen Sentence
		if err := rows.Scan(&sen.ID, &sen.SubheadingID, &sen.Content, &sen.SortOrder, &sen.CreatedAt, &sen.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sentence: %w", err)
		}
		sentences = append(sentences, sen)
	}
	return sentences, rows.Err()
}

// SentenceContextByID locates a sentence along with its subheading, heading
// and project, for prompts that show where a sentence lives before moving
// or copying it.
func (s *SQLiteStore) SentenceContextByID(ctx context.Context, id int64) (*SentenceContext, error) {
	var sc SentenceContext
	err := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.subheading_id, s.content, s.sort_order, s.created_at, s.updated_at,
		        sh.name, h.id, h.name, p.id, p.name
		 FROM sentences s
		 JOIN subheadings sh ON sh.id = s.subheading_id
		 JOIN headings h ON h.id = sh.heading_id
		 JOIN projects p ON p.id = h.project_id
		 WHERE s.id = ?`, id).
		Scan(&sc.ID, &sc.SubheadingID, &sc.Content, &sc.SortOrder, &sc.CreatedAt, &sc.UpdatedAt,
			&sc.SubheadingName, &sc.HeadingID, &sc.HeadingName, &sc.ProjectID, &sc.ProjectName)
	if err != nil {
		return nil, notFound(err)
	}
	return &sc, nil
}

func sentenceByID(ctx context.Context, q querier, id int64) (*Sentence, error) {
	var sen Sentence
	err := q.QueryRowContext(ctx,
		`SELECT id, subheading_id, content, sort_order, created_at, updated_at
		 FROM sentences WHERE id = ?`, id).
		Scan(&sen.ID, &sen.SubheadingID, &sen.Content, &sen.SortOrder, &sen.CreatedAt, &sen.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &sen, nil
}

func insertSentence(ctx context.Context, tx *sql.Tx, subheadingID int64, content string, rank int) (*Sentence, error) {
	ts := now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sentences (subheading_id, content, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		subheadingID, content, rank, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("insert sentence: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sentence id: %w", err)
	}
	return &Sentence{ID: id, SubheadingID: subheadingID, Content: content, SortOrder: rank, CreatedAt: ts, UpdatedAt: ts}, nil
}

// closeGapExcept compacts ranks above pos while skipping one row, used when
// the moved row has already been reattached elsewhere (or re-ranked in
// place for same-group appends).
func closeGapExcept(ctx context.Context, q querier, subheadingID int64, pos int, exceptID int64) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE sentences SET sort_order = sort_order - 1
		 WHERE subheading_id = ? AND sort_order > ? AND id != ?`,
		subheadingID, pos, exceptID); err != nil {
		return fmt.Errorf("close gap at %d: %w", pos, err)
	}
	return nil
}

func touchProjectOfSentence(ctx context.Context, q querier, sentenceID int64) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE projects SET updated_at = ?
		 WHERE id = (SELECT h.project_id FROM headings h
		             JOIN subheadings sh ON sh.heading_id = h.id
		             JOIN sentences s ON s.subheading_id = sh.id
		             WHERE s.id = ?)`,
		now(), sentenceID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

func subheadingExists(ctx context.Context, q querier, subheadingID int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM subheadings WHERE id = ?`, subheadingID).Scan(&one)
	return notFound(err)
}
