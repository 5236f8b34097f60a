package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sitebook-dev/sitebook/internal/model"
)

// CreateProject inserts a new project and returns its row id. Returns
// ErrDuplicate if the project code is already taken.
func (s *Store) CreateProject(ctx context.Context, p model.Project) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (project_code, name, client_name, location,
		     contract_value, start_date, status, project_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Code, p.Name, p.ClientName, p.Location,
		p.ContractValue.String(), fmtDate(p.StartDate), string(p.Status), p.Type)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("project %s: %w", p.Code, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert project %s: %w", p.Code, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to insert project %s: %w", p.Code, err)
	}
	return id, nil
}

// GetProject looks up a project by code. Returns ErrNotFound if no
// such project exists.
func (s *Store) GetProject(ctx context.Context, code string) (model.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, project_code, name, client_name, location,
		        contract_value, start_date, status, project_type
		 FROM projects WHERE project_code = ?`, code)
	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, fmt.Errorf("project %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to query project %s: %w", code, err)
	}
	return p, nil
}

// ProjectExists reports whether code names a known project.
func (s *Store) ProjectExists(ctx context.Context, code string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM projects WHERE project_code = ?`, code).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query project %s: %w", code, err)
	}
	return n > 0, nil
}

// ListProjects returns all projects ordered by code.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_code, name, client_name, location,
		        contract_value, start_date, status, project_type
		 FROM projects ORDER BY project_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetProjectStatus updates a project's lifecycle status. Returns
// ErrNotFound if the code is unknown.
func (s *Store) SetProjectStatus(ctx context.Context, code string, status model.ProjectStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET status = ? WHERE project_code = ?`,
		string(status), code)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", code, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", code, err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", code, ErrNotFound)
	}
	return nil
}

func scanProject(scan func(dest ...any) error) (model.Project, error) {
	var p model.Project
	var value, start, status string
	if err := scan(&p.ID, &p.Code, &p.Name, &p.ClientName, &p.Location,
		&value, &start, &status, &p.Type); err != nil {
		return model.Project{}, err
	}
	var err error
	if p.ContractValue, err = parseAmount(value); err != nil {
		return model.Project{}, err
	}
	if p.StartDate, err = parseDate(start); err != nil {
		return model.Project{}, err
	}
	p.Status = model.ProjectStatus(status)
	return p, nil
}
