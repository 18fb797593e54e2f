// Package validation turns request bodies into typed forms and reports every
// failing field at once.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the full list of field errors for a request.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + " " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var setupOnce sync.Once

// setup makes validator report fields by their wire name instead of the Go
// struct field name.
func setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// Bind decodes the request into obj using the binding matching its content
// type (multipart, urlencoded or JSON) and validates it. Any failure is
// returned as Errors.
func Bind(c *gin.Context, obj interface{}) error {
	setup()
	if err := c.ShouldBind(obj); err != nil {
		return Translate(err)
	}
	return nil
}

// BindJSON is Bind restricted to JSON bodies.
func BindJSON(c *gin.Context, obj interface{}) error {
	setup()
	if err := c.ShouldBindJSON(obj); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate converts binding and validator errors into Errors.
func Translate(err error) Errors {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(Errors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
		}
		return out
	}

	var already Errors
	if errors.As(err, &already) {
		return already
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return Errors{{Field: typeErr.Field, Message: "has the wrong type"}}
	case errors.As(err, &syntaxErr):
		return Errors{{Field: "body", Message: "is not valid JSON"}}
	}

	var numErr *NumericError
	if errors.As(err, &numErr) {
		return Errors{{Field: "body", Message: numErr.Error()}}
	}

	return Errors{{Field: "body", Message: "could not be parsed"}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "number", "numeric":
		return "must be a number"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return fmt.Sprintf("must match the format %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
