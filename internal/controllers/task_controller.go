package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/middleware"
	"focototal-be/internal/models"
	"focototal-be/internal/response"
	"focototal-be/internal/service"
)

type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(taskService service.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// Create handles POST /api/tasks
func (tc *TaskController) Create(c *gin.Context) {
	req := middleware.Body[models.CreateTaskRequest](c)

	task, err := tc.taskService.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TaskEnvelope{Message: "Task created successfully", Task: task})
}

// List handles GET /api/tasks
func (tc *TaskController) List(c *gin.Context) {
	q := middleware.Query[models.ListTasksQuery](c)

	res, err := tc.taskService.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Get handles GET /api/tasks/:id
func (tc *TaskController) Get(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID

	task, err := tc.taskService.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TaskEnvelope{Task: task})
}

// Update handles PUT /api/tasks/:id
func (tc *TaskController) Update(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID
	req := middleware.Body[models.UpdateTaskRequest](c)

	task, err := tc.taskService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TaskEnvelope{Message: "Task updated successfully", Task: task})
}

// Delete handles DELETE /api/tasks/:id
func (tc *TaskController) Delete(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID

	if err := tc.taskService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Task deleted successfully"})
}
