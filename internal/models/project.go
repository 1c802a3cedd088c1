package models

import (
	"strings"

	"focototal-be/internal/entities"
)

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Color       *string `json:"color" binding:"omitempty,hexcolor6"`
}

func (r *CreateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = emptyToNil(r.Description)
	r.Color = emptyToNil(r.Color)
}

// UpdateProjectRequest only touches fields that are present. An empty
// description or color clears the stored value.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Color       *string `json:"color" binding:"omitempty,hexcolor6"`
}

func (r *UpdateProjectRequest) Normalize() {
	r.Name = trimPtr(r.Name)
	r.Description = trimPtr(r.Description)
	r.Color = trimPtr(r.Color)
}

type ListProjectsQuery struct {
	Page      string `form:"page" binding:"omitempty,pagenum"`
	Limit     string `form:"limit" binding:"omitempty,pagesize"`
	Search    string `form:"search" binding:"omitempty,max=200"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=name createdAt updatedAt"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (q *ListProjectsQuery) Normalize() {
	defaultPaging(&q.Page, &q.Limit)
	q.Search = strings.TrimSpace(q.Search)
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
}

func (q ListProjectsQuery) Paging() PageQuery {
	return PageQuery{Page: q.Page, Limit: q.Limit}
}

type ProjectEnvelope struct {
	Message string            `json:"message,omitempty"`
	Project *entities.Project `json:"project"`
}

type ProjectListResponse struct {
	Projects   []*entities.Project `json:"projects"`
	Pagination Pagination          `json:"pagination"`
}
