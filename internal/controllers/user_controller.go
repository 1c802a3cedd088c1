package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/middleware"
	"focototal-be/internal/models"
	"focototal-be/internal/response"
	"focototal-be/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser handles POST /api/users (admins only)
func (uc *UserController) CreateUser(c *gin.Context) {
	req := middleware.Body[models.CreateUserRequest](c)

	res, err := uc.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}
