// tree.go builds the ordered read model consumed by exporters and the full
// outline display.

package store

import (
	"context"
	"fmt"
)

// OrderedContent returns the project's full hierarchy in display order.
// Empty headings and subheadings are included; exporters decide how to
// render them.
func (s *SQLiteStore) OrderedContent(ctx context.Context, projectID int64) (*ProjectTree, error) {
	p, err := s.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tree := &ProjectTree{ID: p.ID, Name: p.Name}

	headings, err := s.ListHeadings(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// One pass per level rather than a three-way join: empty branches
	// must appear, and a LEFT JOIN pyramid is harder to read than three
	// small loops at this scale.
	for _, h := range headings {
		node := HeadingNode{ID: h.ID, Name: h.Name}
		subs, err := s.ListSubheadings(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			snode := SubheadingNode{ID: sub.ID, Name: sub.Name}
			sentences, err := s.ListSentences(ctx, sub.ID)
			if err != nil {
				return nil, err
			}
			for _, sen := range sentences {
				snode.Sentences = append(snode.Sentences, sen.Content)
			}
			node.Subheadings = append(node.Subheadings, snode)
		}
		tree.Headings = append(tree.Headings, node)
	}
	return tree, nil
}

// Stats summarizes the store's contents for the doctor report.
type Stats struct {
	Projects    int
	Headings    int
	Subheadings int
	Sentences   int
}

// Stats counts every entity in the store.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	counts := []struct {
		table string
		dst   *int
	}{
		{"projects", &st.Projects},
		{"headings", &st.Headings},
		{"subheadings", &st.Subheadings},
		{"sentences", &st.Sentences},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.table)).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return st, nil
}

// RankGap describes a sibling group whose sort_order values are not the
// dense sequence 1..N. CheckRanks finding any is a bug or the result of
// external edits to the database.
type RankGap struct {
	Table    string
	ParentID int64
	Want     int
	Got      int
}

// CheckRanks scans every sibling group for rank sequences that are not
// dense 1..N. Used by the doctor report.
func (s *SQLiteStore) CheckRanks(ctx context.Context) ([]RankGap, error) {
	var gaps []RankGap
	for _, g := range []group{headingGroup, subheadingGroup, sentenceGroup} {
		query := fmt.Sprintf(
			`SELECT %s, sort_order,
			        ROW_NUMBER() OVER (PARTITION BY %s ORDER BY sort_order) AS expected
			 FROM %s`, g.parentCol, g.parentCol, g.table)
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("check %s ranks: %w", g.table, err)
		}
		for rows.Next() {
			var parentID int64
			var got, want int
			if err := rows.Scan(&parentID, &got, &want); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s rank: %w", g.table, err)
			}
			if got != want {
				gaps = append(gaps, RankGap{Table: g.table, ParentID: parentID, Want: want, Got: got})
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return gaps, nil
}
