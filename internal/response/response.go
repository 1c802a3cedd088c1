// Package response writes the API's JSON error envelope:
// {"error": message, "code": code} plus "details" for validation failures.
package response

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/apperror"
	"focototal-be/internal/validation"
)

type ErrorBody struct {
	Error      string                  `json:"error"`
	Code       string                  `json:"code"`
	Details    []validation.FieldError `json:"details,omitempty"`
	RetryAfter string                  `json:"retryAfter,omitempty"`
}

// Error aborts the request with the envelope for err. Anything that is not
// an *apperror.Error becomes a 500 and the cause is attached to the gin
// context for the request logger; it never reaches the client.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(appErr.Status(), ErrorBody{Error: appErr.Message, Code: appErr.Code})
}

// Validation aborts with 400 and one detail per violated rule.
func Validation(c *gin.Context, details []validation.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{
		Error:   apperror.ErrValidation.Message,
		Code:    apperror.ErrValidation.Code,
		Details: details,
	})
}

// TooManyRequests aborts with 429 and tells the client when to retry.
func TooManyRequests(c *gin.Context, err *apperror.Error, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorBody{
		Error:      err.Message,
		Code:       err.Code,
		RetryAfter: humanMinutes(seconds),
	})
}

func humanMinutes(seconds int) string {
	minutes := (seconds + 59) / 60
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
