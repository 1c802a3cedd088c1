package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"focototal-be/internal/apperror"
	"focototal-be/internal/entities"
	"focototal-be/internal/models"
	"focototal-be/internal/repository"
)

type TaskService interface {
	Create(ctx context.Context, userID string, req *models.CreateTaskRequest) (*entities.Task, error)
	List(ctx context.Context, userID string, q *models.ListTasksQuery) (*models.TaskListResponse, error)
	Get(ctx context.Context, userID, id string) (*entities.Task, error)
	Update(ctx context.Context, userID, id string, req *models.UpdateTaskRequest) (*entities.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	now      clock
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository) TaskService {
	return &taskService{tasks: tasks, projects: projects, now: utcNow}
}

// Create requires the target project to belong to userID.
func (s *taskService) Create(ctx context.Context, userID string, req *models.CreateTaskRequest) (*entities.Task, error) {
	if err := s.requireProject(ctx, userID, req.ProjectID); err != nil {
		return nil, err
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &entities.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed != nil && *req.Completed,
		DueDate:     due,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.Get(ctx, userID, t.ID)
}

func (s *taskService) List(ctx context.Context, userID string, q *models.ListTasksQuery) (*models.TaskListResponse, error) {
	if q.ProjectID != "" {
		if err := s.requireProject(ctx, userID, q.ProjectID); err != nil {
			return nil, err
		}
	}

	var completed *bool
	switch q.Completed {
	case "true":
		v := true
		completed = &v
	case "false":
		v := false
		completed = &v
	}

	paging := q.Paging()
	tasks, total, err := s.tasks.List(ctx, repository.TaskFilter{
		UserID:    userID,
		Search:    q.Search,
		Completed: completed,
		Priority:  entities.Priority(q.Priority),
		ProjectID: q.ProjectID,
		SortBy:    q.SortBy,
		SortOrder: repository.SortOrder(q.SortOrder),
		Limit:     paging.PageSize(),
		Offset:    paging.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*entities.Task{}
	}

	return &models.TaskListResponse{
		Tasks:      tasks,
		Pagination: models.NewPagination(paging.PageNumber(), paging.PageSize(), total),
	}, nil
}

func (s *taskService) Get(ctx context.Context, userID, id string) (*entities.Task, error) {
	t, err := s.tasks.FindByID(ctx, userID, id)
	if err != nil {
		return nil, taskErr(err)
	}
	return t, nil
}

// Update re-checks project ownership only when the task moves to another
// project.
func (s *taskService) Update(ctx context.Context, userID, id string, req *models.UpdateTaskRequest) (*entities.Task, error) {
	t, err := s.tasks.FindByID(ctx, userID, id)
	if err != nil {
		return nil, taskErr(err)
	}

	if req.ProjectID != nil && *req.ProjectID != t.ProjectID {
		if err := s.requireProject(ctx, userID, *req.ProjectID); err != nil {
			return nil, err
		}
		t.ProjectID = *req.ProjectID
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = blankToNil(*req.Description)
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}
	if req.DueDate != nil {
		if t.DueDate, err = parseDueDate(blankToNil(*req.DueDate)); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	t.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, taskErr(err)
	}
	return s.Get(ctx, userID, id)
}

func (s *taskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return taskErr(err)
	}
	return nil
}

func (s *taskService) requireProject(ctx context.Context, userID, projectID string) error {
	if _, err := s.projects.FindByID(ctx, userID, projectID); err != nil {
		return projectErr(err)
	}
	return nil
}

func parseDueDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrValidation, err)
	}
	t = t.UTC()
	return &t, nil
}

func taskErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.ErrTaskNotFound
	}
	return fmt.Errorf("task: %w", err)
}
