package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"focototal-be/internal/apperror"
	"focototal-be/internal/entities"
	"focototal-be/internal/middleware"
	"focototal-be/internal/models"
	"focototal-be/internal/service"
	"focototal-be/internal/service/mocks"
)

func projectRouter(svc *mocks.MockProjectService) *gin.Engine {
	pc := NewProjectController(svc)
	r := gin.New()
	g := r.Group("/projects", as(userID, entities.RoleFree))
	g.POST("", middleware.ValidateJSON[models.CreateProjectRequest](), pc.Create)
	g.GET("", middleware.ValidateQuery[models.ListProjectsQuery](), pc.List)
	g.GET("/:id", middleware.ValidateURI[models.IDParam](), pc.Get)
	g.PUT("/:id", middleware.ValidateURI[models.IDParam](), middleware.ValidateJSON[models.UpdateProjectRequest](), pc.Update)
	g.DELETE("/:id", middleware.ValidateURI[models.IDParam](), pc.Delete)
	return r
}

func TestProjectController_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockProjectService(ctrl)
	r := projectRouter(svc)

	svc.EXPECT().Create(gomock.Any(), userID, gomock.Any()).
		Return(&entities.Project{ID: projectID, Name: "Home", UserID: userID}, nil)

	w := serve(r, http.MethodPost, "/projects", map[string]string{"name": "Home", "color": "#ABCDEF"})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeMap(t, w)
	assert.Equal(t, "Project created successfully", body["message"])
	assert.Equal(t, "Home", body["project"].(map[string]any)["name"])
}

func TestProjectController_CreateInvalidColor(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := projectRouter(mocks.NewMockProjectService(ctrl))

	w := serve(r, http.MethodPost, "/projects", map[string]string{"name": "H", "color": "red"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, decodeMap(t, w)["details"], 2)
}

func TestProjectController_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockProjectService(ctrl)
	r := projectRouter(svc)

	svc.EXPECT().Get(gomock.Any(), userID, projectID).Return(nil, apperror.ErrProjectNotFound)

	w := serve(r, http.MethodGet, "/projects/"+projectID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found","code":"PROJECT_NOT_FOUND"}`, w.Body.String())
}

func TestProjectController_ListAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockProjectService(ctrl)
	r := projectRouter(svc)

	svc.EXPECT().List(gomock.Any(), userID, gomock.Any()).DoAndReturn(
		func(_ any, _ string, q *models.ListProjectsQuery) (*models.ProjectListResponse, error) {
			assert.Equal(t, "2", q.Page)
			assert.Equal(t, "10", q.Limit)
			return &models.ProjectListResponse{
				Projects:   []*entities.Project{},
				Pagination: models.NewPagination(2, 10, 3),
			}, nil
		})

	w := serve(r, http.MethodGet, "/projects?page=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projects":[],"pagination":{"page":2,"limit":10,"total":3,"totalPages":1,"hasNextPage":false,"hasPreviousPage":true}}`, w.Body.String())

	svc.EXPECT().Delete(gomock.Any(), userID, projectID).Return(nil)
	w = serve(r, http.MethodDelete, "/projects/"+projectID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project deleted successfully", decodeMap(t, w)["message"])
}

func TestTaskController_RepointToForeignProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTaskService(ctrl)
	tc := NewTaskController(svc)
	r := gin.New()
	r.PUT("/tasks/:id", as(userID, entities.RoleFree), middleware.ValidateURI[models.IDParam](), middleware.ValidateJSON[models.UpdateTaskRequest](), tc.Update)

	taskID := "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	svc.EXPECT().Update(gomock.Any(), userID, taskID, gomock.Any()).Return(nil, apperror.ErrProjectNotFound)

	w := serve(r, http.MethodPut, "/tasks/"+taskID, map[string]string{"projectId": projectID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PROJECT_NOT_FOUND", decodeMap(t, w)["code"])
}

func phraseRouter(svc *mocks.MockPhraseService, role entities.Role) *gin.Engine {
	pc := NewPhraseController(svc)
	r := gin.New()
	g := r.Group("/phrases", as(userID, role))
	g.POST("", middleware.ValidateJSON[models.CreatePhraseRequest](), pc.Create)
	g.GET("/user/:userId", middleware.ValidateURI[models.UserIDParam](), middleware.ValidateQuery[models.ListPhrasesQuery](), pc.ListByUser)
	g.GET("/filters/tags", middleware.ValidateQuery[models.PhraseFiltersQuery](), pc.Tags)
	g.DELETE("/:id", middleware.ValidateURI[models.IDParam](), pc.Delete)
	return r
}

func TestPhraseController(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPhraseService(ctrl)
	r := phraseRouter(svc, entities.RoleFree)
	other := "9e8d7c6b-5a4f-4e3d-9c2b-1a0f9e8d7c6b"

	svc.EXPECT().Create(gomock.Any(), userID, &models.CreatePhraseRequest{Phrase: "Stay hungry", Author: "Jobs", Tags: []string{"life"}}).
		Return(&entities.Phrase{ID: projectID, Phrase: "Stay hungry", Author: "Jobs", Tags: []string{"life"}}, nil)
	w := serve(r, http.MethodPost, "/phrases", map[string]any{"phrase": "Stay hungry", "author": "Jobs", "tags": []string{" life "}})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Jobs", decodeMap(t, w)["author"])

	svc.EXPECT().List(gomock.Any(), service.Caller{UserID: userID, Role: entities.RoleFree}, gomock.Any()).DoAndReturn(
		func(_ any, _ service.Caller, q *models.ListPhrasesQuery) (*models.PhraseListResponse, error) {
			assert.Equal(t, other, q.UserID)
			return nil, apperror.ErrForbidden
		})
	w = serve(r, http.MethodGet, "/phrases/user/"+other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	svc.EXPECT().Tags(gomock.Any(), gomock.Any(), "").Return([]string{"life", "work"}, nil)
	w = serve(r, http.MethodGet, "/phrases/filters/tags", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["life","work"]`, w.Body.String())

	svc.EXPECT().Delete(gomock.Any(), userID, projectID).Return(nil)
	w = serve(r, http.MethodDelete, "/phrases/"+projectID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
