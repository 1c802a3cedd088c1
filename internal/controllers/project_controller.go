package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/middleware"
	"focototal-be/internal/models"
	"focototal-be/internal/response"
	"focototal-be/internal/service"
)

type ProjectController struct {
	projectService service.ProjectService
}

func NewProjectController(projectService service.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// Create handles POST /api/projects
func (pc *ProjectController) Create(c *gin.Context) {
	req := middleware.Body[models.CreateProjectRequest](c)

	project, err := pc.projectService.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ProjectEnvelope{Message: "Project created successfully", Project: project})
}

// List handles GET /api/projects
func (pc *ProjectController) List(c *gin.Context) {
	q := middleware.Query[models.ListProjectsQuery](c)

	res, err := pc.projectService.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Get handles GET /api/projects/:id
func (pc *ProjectController) Get(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID

	project, err := pc.projectService.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectEnvelope{Project: project})
}

// Update handles PUT /api/projects/:id
func (pc *ProjectController) Update(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID
	req := middleware.Body[models.UpdateProjectRequest](c)

	project, err := pc.projectService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectEnvelope{Message: "Project updated successfully", Project: project})
}

// Delete handles DELETE /api/projects/:id
func (pc *ProjectController) Delete(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID

	if err := pc.projectService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Project deleted successfully"})
}
