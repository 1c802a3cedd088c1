package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"focototal-be/internal/entities"
	"focototal-be/internal/repository"
)

const projectWithCount = "projects.*, (SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id) AS task_count"

var projectSortColumns = map[string]string{
	"name":      "projects.name",
	"createdAt": "projects.created_at",
	"updatedAt": "projects.updated_at",
}

type projectRepository struct {
	db *gorm.DB
}

func (r *projectRepository) Create(ctx context.Context, p *entities.Project) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, userID, id string) (*entities.Project, error) {
	var p entities.Project
	err := r.db.WithContext(ctx).Model(&entities.Project{}).
		Select(projectWithCount).
		Where("projects.id = ? AND projects.user_id = ?", id, userID).
		Take(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *projectRepository) List(ctx context.Context, f repository.ProjectFilter) ([]*entities.Project, int, error) {
	q := r.db.WithContext(ctx).Model(&entities.Project{}).Where("projects.user_id = ?", f.UserID)
	if f.Search != "" {
		q = q.Where(`LOWER(projects.name) LIKE ? ESCAPE '\'`, likeContains(f.Search))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	column, ok := projectSortColumns[f.SortBy]
	if !ok {
		column = "projects.created_at"
	}

	projects := make([]*entities.Project, 0)
	err := q.Select(projectWithCount).
		Order(column + " " + direction(f.SortOrder)).
		Order("projects.id").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return projects, int(total), nil
}

func (r *projectRepository) Update(ctx context.Context, p *entities.Project) error {
	res := r.db.WithContext(ctx).Model(&entities.Project{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"color":       p.Color,
			"updated_at":  p.UpdatedAt,
		})
	return affected(res, "update project")
}

// Delete removes the project and its tasks in one transaction.
func (r *projectRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Project{})
		if err := affected(res, "delete project"); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&entities.Task{}).Error; err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
		return nil
	})
}
