package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focototal-be/internal/database"
	"focototal-be/internal/entities"
)

const taskSelect = `
	SELECT t.id, t.title, t.description, t.completed, t.due_date, t.priority,
		t.project_id, t.user_id, t.created_at, t.updated_at, p.name, p.color
	FROM tasks t
	JOIN projects p ON p.id = t.project_id`

var taskSortColumns = map[string]string{
	"title":     "t.title",
	"createdAt": "t.created_at",
	"updatedAt": "t.updated_at",
	"dueDate":   "t.due_date",
	"priority":  "CASE t.priority WHEN 'LOW' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'HIGH' THEN 3 END",
}

type taskRepository struct {
	db database.DBTX
}

func NewTaskRepository(db database.DBTX) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, t *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, completed, due_date, priority, project_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.Completed, t.DueDate, string(t.Priority),
		t.ProjectID, t.UserID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, userID, id string) (*entities.Task, error) {
	row := r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1 AND t.user_id = $2`, id, userID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return t, nil
}

func (r *taskRepository) List(ctx context.Context, f TaskFilter) ([]*entities.Task, int, error) {
	var where whereClause
	where.add("t.user_id = $%[1]d", f.UserID)
	if f.Search != "" {
		where.add("t.title ILIKE $%[1]d", containsPattern(f.Search))
	}
	if f.Completed != nil {
		where.add("t.completed = $%[1]d", *f.Completed)
	}
	if f.Priority != "" {
		where.add("t.priority = $%[1]d", string(f.Priority))
	}
	if f.ProjectID != "" {
		where.add("t.project_id = $%[1]d", f.ProjectID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks t`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	column, ok := taskSortColumns[f.SortBy]
	if !ok {
		column = "t.created_at"
	}
	query := fmt.Sprintf("%s%s ORDER BY %s %s NULLS LAST, t.id LIMIT $%d OFFSET $%d",
		taskSelect, where.String(), column, direction(f.SortOrder), where.next(), where.next()+1)
	args := append(where.args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entities.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, t *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, due_date = $4, priority = $5,
			project_id = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Completed, t.DueDate, string(t.Priority),
		t.ProjectID, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireAffected(res, "update task")
}

func (r *taskRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(res, "delete task")
}

func scanTask(s rowScanner) (*entities.Task, error) {
	var (
		t        entities.Task
		priority string
		ref      entities.ProjectRef
	)
	err := s.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &priority,
		&t.ProjectID, &t.UserID, &t.CreatedAt, &t.UpdatedAt, &ref.Name, &ref.Color)
	if err != nil {
		return nil, err
	}
	t.Priority = entities.Priority(priority)
	ref.ID = t.ProjectID
	t.Project = &ref
	return &t, nil
}
