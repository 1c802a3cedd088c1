// Package validation plugs a go-playground/validator engine into gin's
// binding so every bound payload is normalized, then checked against the
// `binding` tags of its struct.
package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Normalizer is implemented by payloads that trim, lower-case or default
// their fields before validation runs.
type Normalizer interface {
	Normalize()
}

var hexColorRE = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Engine satisfies binding.StructValidator.
type Engine struct {
	once     sync.Once
	validate *validator.Validate
}

var _ binding.StructValidator = (*Engine)(nil)

func NewEngine() *Engine {
	e := &Engine{}
	e.lazyinit()
	return e
}

var installOnce sync.Once

// Install makes a shared Engine gin's default binding validator. Safe to call
// more than once.
func Install() {
	installOnce.Do(func() {
		binding.Validator = NewEngine()
	})
}

func (e *Engine) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	if n, ok := obj.(Normalizer); ok {
		n.Normalize()
	}

	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	e.lazyinit()
	return e.validate.Struct(obj)
}

func (e *Engine) Engine() any {
	e.lazyinit()
	return e.validate
}

func (e *Engine) lazyinit() {
	e.once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")
		v.RegisterTagNameFunc(fieldName)

		_ = v.RegisterValidation("pagenum", func(fl validator.FieldLevel) bool {
			n, ok := digits(fl.Field().String())
			return ok && n > 0
		})
		_ = v.RegisterValidation("pagesize", func(fl validator.FieldLevel) bool {
			n, ok := digits(fl.Field().String())
			return ok && n > 0 && n <= 100
		})
		// Empty is accepted so updates can clear the value.
		_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || hexColorRE.MatchString(s)
		})
		// bcrypt only hashes the first 72 bytes.
		_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			return err == nil && len(fl.Field().String()) <= limit
		})
		_ = v.RegisterValidation("isodatetime", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			_, err := time.Parse(time.RFC3339, s)
			return err == nil
		})

		e.validate = v
	})
}

// fieldName reports a field by the name the client used for it.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
