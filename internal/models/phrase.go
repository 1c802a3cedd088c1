package models

import (
	"strings"

	"focototal-be/internal/entities"
)

type CreatePhraseRequest struct {
	Phrase string   `json:"phrase" binding:"required,min=5,max=1000"`
	Author string   `json:"author" binding:"required,min=2,max=100"`
	Tags   []string `json:"tags" binding:"max=10,dive,required,max=50"`
}

func (r *CreatePhraseRequest) Normalize() {
	r.Phrase = strings.TrimSpace(r.Phrase)
	r.Author = strings.TrimSpace(r.Author)
	r.Tags = trimAll(r.Tags)
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

// UpdatePhraseRequest replaces tags only when the field is present.
type UpdatePhraseRequest struct {
	Phrase *string  `json:"phrase" binding:"omitempty,min=5,max=1000"`
	Author *string  `json:"author" binding:"omitempty,min=2,max=100"`
	Tags   []string `json:"tags" binding:"omitempty,max=10,dive,required,max=50"`
}

func (r *UpdatePhraseRequest) Normalize() {
	r.Phrase = trimPtr(r.Phrase)
	r.Author = trimPtr(r.Author)
	r.Tags = trimAll(r.Tags)
}

type ListPhrasesQuery struct {
	Page   string `form:"page" binding:"omitempty,pagenum"`
	Limit  string `form:"limit" binding:"omitempty,pagesize"`
	UserID string `form:"userId" binding:"omitempty,uuid"`
	Tag    string `form:"tag" binding:"omitempty,max=50"`
	Author string `form:"author" binding:"omitempty,max=100"`
	Search string `form:"search" binding:"omitempty,max=200"`
}

func (q *ListPhrasesQuery) Normalize() {
	defaultPaging(&q.Page, &q.Limit)
	q.UserID = strings.TrimSpace(q.UserID)
	q.Tag = strings.TrimSpace(q.Tag)
	q.Author = strings.TrimSpace(q.Author)
	q.Search = strings.TrimSpace(q.Search)
}

func (q ListPhrasesQuery) Paging() PageQuery {
	return PageQuery{Page: q.Page, Limit: q.Limit}
}

// PhraseFiltersQuery scopes the distinct author/tag lookups.
type PhraseFiltersQuery struct {
	UserID string `form:"userId" binding:"omitempty,uuid"`
}

func (q *PhraseFiltersQuery) Normalize() {
	q.UserID = strings.TrimSpace(q.UserID)
}

type PhraseListResponse struct {
	Phrases    []*entities.Phrase `json:"phrases"`
	Pagination Pagination         `json:"pagination"`
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
