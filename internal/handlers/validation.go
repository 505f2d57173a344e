package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mesto/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MsgInvalidBody is returned when the request body cannot be decoded.
const MsgInvalidBody = "Invalid request body"

// ValidationError reports the request fields that violate their constraints.
type ValidationError struct {
	Source string            // "body" or "params"
	Keys   []string          // offending fields, in struct order
	Fields map[string]string // field -> reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Source, strings.Join(e.Keys, ", "))
}

// requestValidator checks decoded request DTOs before they reach a service.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "params"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return &requestValidator{validate: v}
}

// body decodes the JSON body into out and validates it.
func (v *requestValidator) body(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.BadRequest(MsgInvalidBody)
	}
	return v.check("body", out)
}

// params binds the route parameters into out and validates them.
func (v *requestValidator) params(c *fiber.Ctx, out any) error {
	if err := c.ParamsParser(out); err != nil {
		return apperrors.BadRequest(MsgInvalidBody)
	}
	return v.check("params", out)
}

func (v *requestValidator) check(source string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	verr := &ValidationError{Source: source, Fields: make(map[string]string, len(validationErrors))}
	for _, e := range validationErrors {
		verr.Keys = append(verr.Keys, e.Field())
		verr.Fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return verr
}
