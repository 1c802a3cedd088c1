package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"focototal-be/internal/entities"
	"focototal-be/internal/repository"
)

var taskSortColumns = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"priority":  "CASE priority WHEN 'LOW' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'HIGH' THEN 3 END",
}

type taskRepository struct {
	db *gorm.DB
}

func (r *taskRepository) Create(ctx context.Context, t *entities.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, userID, id string) (*entities.Task, error) {
	var t entities.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&t).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.attachProjects(ctx, []*entities.Task{&t}); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) List(ctx context.Context, f repository.TaskFilter) ([]*entities.Task, int, error) {
	q := r.db.WithContext(ctx).Model(&entities.Task{}).Where("user_id = ?", f.UserID)
	if f.Search != "" {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likeContains(f.Search))
	}
	if f.Completed != nil {
		q = q.Where("completed = ?", *f.Completed)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", string(f.Priority))
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	column, ok := taskSortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}

	tasks := make([]*entities.Task, 0)
	err := q.Order(column + " " + direction(f.SortOrder) + " NULLS LAST").
		Order("id").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	if err := r.attachProjects(ctx, tasks); err != nil {
		return nil, 0, err
	}
	return tasks, int(total), nil
}

func (r *taskRepository) Update(ctx context.Context, t *entities.Task) error {
	res := r.db.WithContext(ctx).Model(&entities.Task{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"completed":   t.Completed,
			"due_date":    t.DueDate,
			"priority":    string(t.Priority),
			"project_id":  t.ProjectID,
			"updated_at":  t.UpdatedAt,
		})
	return affected(res, "update task")
}

func (r *taskRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Task{})
	return affected(res, "delete task")
}

// attachProjects fills the embedded project summary with one extra query.
func (r *taskRepository) attachProjects(ctx context.Context, tasks []*entities.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ProjectID)
	}

	var projects []entities.Project
	if err := r.db.WithContext(ctx).Select("id", "name", "color").Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return fmt.Errorf("load task projects: %w", err)
	}
	byID := make(map[string]*entities.ProjectRef, len(projects))
	for _, p := range projects {
		byID[p.ID] = &entities.ProjectRef{ID: p.ID, Name: p.Name, Color: p.Color}
	}
	for _, t := range tasks {
		t.Project = byID[t.ProjectID]
	}
	return nil
}
