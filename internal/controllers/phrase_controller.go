package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/middleware"
	"focototal-be/internal/models"
	"focototal-be/internal/response"
	"focototal-be/internal/service"
)

type PhraseController struct {
	phraseService service.PhraseService
}

func NewPhraseController(phraseService service.PhraseService) *PhraseController {
	return &PhraseController{phraseService: phraseService}
}

func caller(c *gin.Context) service.Caller {
	return service.Caller{UserID: middleware.CurrentUserID(c), Role: middleware.CurrentRole(c)}
}

// Create handles POST /api/phrases
func (pc *PhraseController) Create(c *gin.Context) {
	req := middleware.Body[models.CreatePhraseRequest](c)

	phrase, err := pc.phraseService.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, phrase)
}

// List handles GET /api/phrases
func (pc *PhraseController) List(c *gin.Context) {
	q := middleware.Query[models.ListPhrasesQuery](c)

	res, err := pc.phraseService.List(c.Request.Context(), caller(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ListByUser handles GET /api/phrases/user/:userId
func (pc *PhraseController) ListByUser(c *gin.Context) {
	q := middleware.Query[models.ListPhrasesQuery](c)
	q.UserID = middleware.Params[models.UserIDParam](c).UserID

	res, err := pc.phraseService.List(c.Request.Context(), caller(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Get handles GET /api/phrases/:id
func (pc *PhraseController) Get(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID

	phrase, err := pc.phraseService.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, phrase)
}

// Update handles PUT /api/phrases/:id
func (pc *PhraseController) Update(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID
	req := middleware.Body[models.UpdatePhraseRequest](c)

	phrase, err := pc.phraseService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, phrase)
}

// Delete handles DELETE /api/phrases/:id
func (pc *PhraseController) Delete(c *gin.Context) {
	id := middleware.Params[models.IDParam](c).ID

	if err := pc.phraseService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Authors handles GET /api/phrases/filters/authors
func (pc *PhraseController) Authors(c *gin.Context) {
	q := middleware.Query[models.PhraseFiltersQuery](c)

	authors, err := pc.phraseService.Authors(c.Request.Context(), caller(c), q.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, authors)
}

// Tags handles GET /api/phrases/filters/tags
func (pc *PhraseController) Tags(c *gin.Context) {
	q := middleware.Query[models.PhraseFiltersQuery](c)

	tags, err := pc.phraseService.Tags(c.Request.Context(), caller(c), q.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}
