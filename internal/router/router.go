// Package router registers every HTTP route on a gin engine.
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"focototal-be/internal/controllers"
	"focototal-be/internal/entities"
	"focototal-be/internal/logging"
	"focototal-be/internal/middleware"
	"focototal-be/internal/models"
	"focototal-be/internal/service"
	"focototal-be/internal/validation"
)

// Deps is everything the routes need. RateLimiter may be nil to disable
// the general per-IP bucket.
type Deps struct {
	Logger       logging.Logger
	Tokens       middleware.TokenParser
	DB           controllers.Pinger
	Auth         service.AuthService
	Users        service.UserService
	Projects     service.ProjectService
	Tasks        service.TaskService
	Phrases      service.PhraseService
	RateLimiter  *middleware.RateLimiter
	LoginLimiter *middleware.LoginLimiter
	CORSOrigins  []string
}

// New builds the engine. It installs the shared request validator as gin's
// binding validator.
func New(d Deps) *gin.Engine {
	validation.Install()

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Logger), middleware.Recovery(d.Logger), corsMiddleware(d.CORSOrigins))

	health := controllers.NewHealthController(d.DB)
	authController := controllers.NewAuthController(d.Auth)
	userController := controllers.NewUserController(d.Users)
	projectController := controllers.NewProjectController(d.Projects)
	taskController := controllers.NewTaskController(d.Tasks)
	phraseController := controllers.NewPhraseController(d.Phrases)

	r.GET("/", health.Root)

	api := r.Group("/api")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter.LimitMiddleware())
	}
	api.GET("/health", health.Health)

	requireAuth := middleware.AuthMiddleware(d.Tokens)
	byID := middleware.ValidateURI[models.IDParam]()

	auth := api.Group("/auth")
	{
		auth.POST("/login",
			d.LoginLimiter.ByIP(),
			middleware.ValidateJSON[models.LoginRequest](),
			d.LoginLimiter.ByEmail(),
			authController.Login,
		)
		auth.POST("/registro", middleware.ValidateJSON[models.RegisterRequest](), authController.Register)
		auth.POST("/forgot-password", middleware.ValidateJSON[models.ForgotPasswordRequest](), authController.ForgotPassword)
		auth.POST("/reset-password", middleware.ValidateJSON[models.ResetPasswordRequest](), authController.ResetPassword)
		auth.GET("/me", requireAuth, authController.Me)
	}

	users := api.Group("/users", requireAuth, middleware.RequireRole(entities.RoleAdmin))
	{
		users.POST("", middleware.ValidateJSON[models.CreateUserRequest](), userController.CreateUser)
	}

	projects := api.Group("/projects", requireAuth)
	{
		projects.POST("", middleware.ValidateJSON[models.CreateProjectRequest](), projectController.Create)
		projects.GET("", middleware.ValidateQuery[models.ListProjectsQuery](), projectController.List)
		projects.GET("/:id", byID, projectController.Get)
		projects.PUT("/:id", byID, middleware.ValidateJSON[models.UpdateProjectRequest](), projectController.Update)
		projects.DELETE("/:id", byID, projectController.Delete)
	}

	tasks := api.Group("/tasks", requireAuth)
	{
		tasks.POST("", middleware.ValidateJSON[models.CreateTaskRequest](), taskController.Create)
		tasks.GET("", middleware.ValidateQuery[models.ListTasksQuery](), taskController.List)
		tasks.GET("/:id", byID, taskController.Get)
		tasks.PUT("/:id", byID, middleware.ValidateJSON[models.UpdateTaskRequest](), taskController.Update)
		tasks.DELETE("/:id", byID, taskController.Delete)
	}

	phrases := api.Group("/phrases", requireAuth)
	{
		phrases.GET("/filters/authors", middleware.ValidateQuery[models.PhraseFiltersQuery](), phraseController.Authors)
		phrases.GET("/filters/tags", middleware.ValidateQuery[models.PhraseFiltersQuery](), phraseController.Tags)
		phrases.GET("/user/:userId",
			middleware.ValidateURI[models.UserIDParam](),
			middleware.ValidateQuery[models.ListPhrasesQuery](),
			phraseController.ListByUser,
		)
		phrases.POST("", middleware.ValidateJSON[models.CreatePhraseRequest](), phraseController.Create)
		phrases.GET("", middleware.ValidateQuery[models.ListPhrasesQuery](), phraseController.List)
		phrases.GET("/:id", byID, phraseController.Get)
		phrases.PUT("/:id", byID, middleware.ValidateJSON[models.UpdatePhraseRequest](), phraseController.Update)
		phrases.DELETE("/:id", byID, phraseController.Delete)
	}

	return r
}

// corsMiddleware reflects any origin when origins contains "*", otherwise
// only the listed ones. Credentials are allowed either way.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
