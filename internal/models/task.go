package models

import (
	"strings"

	"focototal-be/internal/entities"
)

type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required,min=2,max=200"`
	Description *string           `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool             `json:"completed"`
	DueDate     *string           `json:"dueDate" binding:"omitempty,isodatetime"`
	Priority    entities.Priority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	ProjectID   string            `json:"projectId" binding:"required,uuid"`
}

func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = emptyToNil(r.Description)
	r.DueDate = emptyToNil(r.DueDate)
	r.ProjectID = strings.TrimSpace(r.ProjectID)
	if r.Completed == nil {
		f := false
		r.Completed = &f
	}
	if r.Priority == "" {
		r.Priority = entities.PriorityMedium
	}
}

// UpdateTaskRequest only touches fields that are present. An empty
// description or dueDate clears the stored value.
type UpdateTaskRequest struct {
	Title       *string            `json:"title" binding:"omitempty,min=2,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool              `json:"completed"`
	DueDate     *string            `json:"dueDate" binding:"omitempty,isodatetime"`
	Priority    *entities.Priority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	ProjectID   *string            `json:"projectId" binding:"omitempty,uuid"`
}

func (r *UpdateTaskRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	r.DueDate = trimPtr(r.DueDate)
	r.ProjectID = trimPtr(r.ProjectID)
}

type ListTasksQuery struct {
	Page      string `form:"page" binding:"omitempty,pagenum"`
	Limit     string `form:"limit" binding:"omitempty,pagesize"`
	Search    string `form:"search" binding:"omitempty,max=200"`
	Completed string `form:"completed" binding:"omitempty,oneof=true false"`
	Priority  string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	ProjectID string `form:"projectId" binding:"omitempty,uuid"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=title createdAt updatedAt dueDate priority"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (q *ListTasksQuery) Normalize() {
	defaultPaging(&q.Page, &q.Limit)
	q.Search = strings.TrimSpace(q.Search)
	q.Completed = strings.ToLower(strings.TrimSpace(q.Completed))
	q.ProjectID = strings.TrimSpace(q.ProjectID)
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
}

func (q ListTasksQuery) Paging() PageQuery {
	return PageQuery{Page: q.Page, Limit: q.Limit}
}

type TaskEnvelope struct {
	Message string         `json:"message,omitempty"`
	Task    *entities.Task `json:"task"`
}

type TaskListResponse struct {
	Tasks      []*entities.Task `json:"tasks"`
	Pagination Pagination       `json:"pagination"`
}
