package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"focototal-be/internal/apperror"
	"focototal-be/internal/entities"
	"focototal-be/internal/models"
	"focototal-be/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, userID string, req *models.CreateProjectRequest) (*entities.Project, error)
	List(ctx context.Context, userID string, q *models.ListProjectsQuery) (*models.ProjectListResponse, error)
	Get(ctx context.Context, userID, id string) (*entities.Project, error)
	Update(ctx context.Context, userID, id string, req *models.UpdateProjectRequest) (*entities.Project, error)
	Delete(ctx context.Context, userID, id string) error
}

type projectService struct {
	projects repository.ProjectRepository
	now      clock
}

func NewProjectService(projects repository.ProjectRepository) ProjectService {
	return &projectService{projects: projects, now: utcNow}
}

func (s *projectService) Create(ctx context.Context, userID string, req *models.CreateProjectRequest) (*entities.Project, error) {
	now := s.now()
	p := &entities.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, userID string, q *models.ListProjectsQuery) (*models.ProjectListResponse, error) {
	paging := q.Paging()
	projects, total, err := s.projects.List(ctx, repository.ProjectFilter{
		UserID:    userID,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: repository.SortOrder(q.SortOrder),
		Limit:     paging.PageSize(),
		Offset:    paging.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []*entities.Project{}
	}

	return &models.ProjectListResponse{
		Projects:   projects,
		Pagination: models.NewPagination(paging.PageNumber(), paging.PageSize(), total),
	}, nil
}

// Get returns the project only if userID owns it; otherwise it does not exist.
func (s *projectService) Get(ctx context.Context, userID, id string) (*entities.Project, error) {
	p, err := s.projects.FindByID(ctx, userID, id)
	if err != nil {
		return nil, projectErr(err)
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, userID, id string, req *models.UpdateProjectRequest) (*entities.Project, error) {
	p, err := s.projects.FindByID(ctx, userID, id)
	if err != nil {
		return nil, projectErr(err)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = blankToNil(*req.Description)
	}
	if req.Color != nil {
		p.Color = blankToNil(*req.Color)
	}
	p.UpdatedAt = s.now()

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, projectErr(err)
	}
	return p, nil
}

// Delete removes the project and, by cascade, its tasks.
func (s *projectService) Delete(ctx context.Context, userID, id string) error {
	if err := s.projects.Delete(ctx, userID, id); err != nil {
		return projectErr(err)
	}
	return nil
}

func projectErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.ErrProjectNotFound
	}
	return fmt.Errorf("project: %w", err)
}

func blankToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
