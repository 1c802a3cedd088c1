package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focototal-be/internal/database"
	"focototal-be/internal/entities"
)

const projectSelect = `
	SELECT p.id, p.name, p.description, p.color, p.user_id, p.created_at, p.updated_at,
		(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS task_count
	FROM projects p`

var projectSortColumns = map[string]string{
	"name":      "p.name",
	"createdAt": "p.created_at",
	"updatedAt": "p.updated_at",
}

type projectRepository struct {
	db database.DBTX
}

func NewProjectRepository(db database.DBTX) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *entities.Project) error {
	query := `
		INSERT INTO projects (id, name, description, color, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.Color, p.UserID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, userID, id string) (*entities.Project, error) {
	row := r.db.QueryRowContext(ctx, projectSelect+` WHERE p.id = $1 AND p.user_id = $2`, id, userID)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) List(ctx context.Context, f ProjectFilter) ([]*entities.Project, int, error) {
	var where whereClause
	where.add("p.user_id = $%[1]d", f.UserID)
	if f.Search != "" {
		where.add("p.name ILIKE $%[1]d", containsPattern(f.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects p`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	column, ok := projectSortColumns[f.SortBy]
	if !ok {
		column = "p.created_at"
	}
	query := fmt.Sprintf("%s%s ORDER BY %s %s, p.id LIMIT $%d OFFSET $%d",
		projectSelect, where.String(), column, direction(f.SortOrder), where.next(), where.next()+1)
	args := append(where.args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*entities.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, p *entities.Project) error {
	query := `
		UPDATE projects
		SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Color, p.UpdatedAt, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireAffected(res, "update project")
}

// Delete removes the project; its tasks go with it through ON DELETE CASCADE.
func (r *projectRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireAffected(res, "delete project")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (*entities.Project, error) {
	var p entities.Project
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &p.TaskCount); err != nil {
		return nil, err
	}
	return &p, nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
