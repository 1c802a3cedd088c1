package models

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery carries 1-based pagination as raw query strings so the
// validator can report non-numeric input per field.
type PageQuery struct {
	Page  string `form:"page" binding:"omitempty,pagenum"`
	Limit string `form:"limit" binding:"omitempty,pagesize"`
}

func (q *PageQuery) normalizePage() {
	q.Page = strings.TrimSpace(q.Page)
	q.Limit = strings.TrimSpace(q.Limit)
	if q.Page == "" {
		q.Page = strconv.Itoa(DefaultPage)
	}
	if q.Limit == "" {
		q.Limit = strconv.Itoa(DefaultLimit)
	}
}

// PageNumber returns the validated page, falling back to the default.
func (q PageQuery) PageNumber() int {
	if n, err := strconv.Atoi(q.Page); err == nil && n > 0 {
		return n
	}
	return DefaultPage
}

// PageSize returns the validated limit, clamped to MaxLimit.
func (q PageQuery) PageSize() int {
	n, err := strconv.Atoi(q.Limit)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Offset is the number of rows to skip for the page. Pages too large to
// address saturate at math.MaxInt, which still reads past the last row.
func (q PageQuery) Offset() int {
	page, size := q.PageNumber(), q.PageSize()
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagination derives the page envelope. totalPages is ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
