package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/middleware"
	"focototal-be/internal/models"
	"focototal-be/internal/response"
	"focototal-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /api/auth/registro
func (ac *AuthController) Register(c *gin.Context) {
	req := middleware.Body[models.RegisterRequest](c)

	res, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	req := middleware.Body[models.LoginRequest](c)

	res, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	req := middleware.Body[models.ForgotPasswordRequest](c)

	res, err := ac.authService.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ResetPassword handles POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	req := middleware.Body[models.ResetPasswordRequest](c)

	res, err := ac.authService.ResetPassword(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	res, err := ac.authService.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
