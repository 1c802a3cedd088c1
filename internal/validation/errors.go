package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one violated rule, addressed by a dot-notation path such as
// "tags.1".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrMalformedBody marks a request body that is not decodable JSON.
var ErrMalformedBody = errors.New("malformed request body")

var indexRE = regexp.MustCompile(`\[([^\]]+)\]`)

// Details converts a binding error into per-field details. ok is false when
// err is not a client error, which callers treat as an internal failure.
func Details(err error) (details []FieldError, ok bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details = make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: Path(fe.Namespace()), Message: message(fe)})
		}
		return details, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []FieldError{{Field: field, Message: "must be of type " + jsonType(typeErr.Type.Kind())}}, true
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, ErrMalformedBody) {
		return []FieldError{{Field: "body", Message: "must be valid JSON"}}, true
	}

	return nil, false
}

// Path turns a validator namespace ("CreatePhraseRequest.tags[1]") into the
// client-facing path ("tags.1").
func Path(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		namespace = rest
	}
	return indexRE.ReplaceAllString(namespace, ".$1")
}

func message(fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isList {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "hexcolor6":
		return "must be a hexadecimal color (#RRGGBB)"
	case "isodatetime":
		return "must be an ISO 8601 date-time"
	case "pagenum":
		return "must be a number greater than 0"
	case "pagesize":
		return "must be a number between 1 and 100"
	default:
		return "is invalid"
	}
}

func jsonType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return "number"
	}
}
