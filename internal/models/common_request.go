package models

import "strings"

// IDParam binds the :id path segment.
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// UserIDParam binds the :userId path segment.
type UserIDParam struct {
	UserID string `uri:"userId" binding:"required,uuid"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// emptyToNil drops optional values that were sent as blank strings on create.
func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return trimPtr(s)
}

func defaultPaging(page, limit *string) {
	q := PageQuery{Page: *page, Limit: *limit}
	q.normalizePage()
	*page, *limit = q.Page, q.Limit
}
