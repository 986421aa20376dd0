// projects.go implements project CRUD. Projects are the root of every
// outline; deleting one cascades through headings, subheadings and
// sentences via the schema's foreign keys.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateProject inserts a new project. Names are unique across the store;
// a collision returns ErrNameTaken.
func (s *SQLiteStore) CreateProject(ctx context.Context, name string) (*Project, error) {
	var p *Project
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM projects WHERE name = ?`, name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check project name: %w", err)
		}
		if exists > 0 {
			return ErrNameTaken
		}

		ts := now()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO projects (name, created_at, updated_at) VALUES (?, ?, ?)`,
			name, ts, ts)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("project id: %w", err)
		}
		p = &Project{ID: id, Name: name, CreatedAt: ts, UpdatedAt: ts}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ProjectByID fetches a single project, ErrNotFound when missing.
func (s *SQLiteStore) ProjectByID(ctx context.Context, id int64) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// ProjectByName fetches a project by its unique name.
func (s *SQLiteStore) ProjectByName(ctx context.Context, name string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM projects WHERE name = ?`, name)
	return scanProject(row)
}

// ListProjects returns all projects, most recently touched first. UpdatedAt
// moves on every descendant mutation, so this reads as "recent work first".
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM projects ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project and its entire subtree.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(sc scanner) (*Project, error) {
	var p Project
	if err := sc.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// touchProject refreshes a project's updated_at. Every mutation anywhere in
// a project's tree routes through one of the touch helpers below so project
// listings sort by real activity.
func touchProject(ctx context.Context, q querier, projectID int64) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE projects SET updated_at = ? WHERE id = ?`, now(), projectID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

func touchProjectOfHeading(ctx context.Context, q querier, headingID int64) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE projects SET updated_at = ?
		 WHERE id = (SELECT project_id FROM headings WHERE id = ?)`,
		now(), headingID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

func touchProjectOfSubheading(ctx context.Context, q querier, subheadingID int64) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE projects SET updated_at = ?
		 WHERE id = (SELECT h.project_id FROM headings h
		             JOIN subheadings sh ON sh.heading_id = h.id
		             WHERE sh.id = ?)`,
		now(), subheadingID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}
