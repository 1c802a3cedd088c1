package middleware

import (
	"github.com/gin-gonic/gin"

	"focototal-be/internal/response"
	"focototal-be/internal/validation"
)

const (
	bodyKey   = "validated_body"
	queryKey  = "validated_query"
	paramsKey = "validated_params"
)

// ValidateJSON decodes and validates the JSON body into a T. On success the
// normalized payload replaces the raw body for downstream handlers (see Body).
func ValidateJSON[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := new(T)
		if c.Request.Body == nil {
			reject(c, validation.ErrMalformedBody)
			return
		}
		if err := c.ShouldBindJSON(payload); err != nil {
			reject(c, err)
			return
		}
		c.Set(bodyKey, payload)
		c.Next()
	}
}

// ValidateQuery binds and validates the query string into a T.
func ValidateQuery[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := new(T)
		if err := c.ShouldBindQuery(payload); err != nil {
			reject(c, err)
			return
		}
		c.Set(queryKey, payload)
		c.Next()
	}
}

// ValidateURI binds and validates path parameters into a T.
func ValidateURI[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := new(T)
		if err := c.ShouldBindUri(payload); err != nil {
			reject(c, err)
			return
		}
		c.Set(paramsKey, payload)
		c.Next()
	}
}

// Body returns the payload stored by ValidateJSON[T]. It panics when the
// route was registered without it.
func Body[T any](c *gin.Context) *T { return c.MustGet(bodyKey).(*T) }

func Query[T any](c *gin.Context) *T { return c.MustGet(queryKey).(*T) }

func Params[T any](c *gin.Context) *T { return c.MustGet(paramsKey).(*T) }

// reject answers 400 with per-field details for client mistakes and 500 for
// anything the validator did not anticipate.
func reject(c *gin.Context, err error) {
	if details, ok := validation.Details(err); ok {
		response.Validation(c, details)
		return
	}
	response.Error(c, err)
}
