package validator

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	val "github.com/go-playground/validator/v10"
)

const unnamedField = "value"

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param} characters",
		"min":      "{field} must be at least {param} characters",
		"galpao":   "{field} is invalid",
		"nefield":  "{field} must differ from {param}",
		"password": "{field} must be at most 72 bytes",
	}

	// tags whose param names another struct field
	fieldParamTags = map[string]bool{"nefield": true, "eqfield": true}
)

// jsonName reports struct fields by their JSON key, so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			parts = append(parts, valErr.Error())

			continue
		}

		field := valErr.Field()
		if field == "" {
			field = unnamedField
		}

		param := valErr.Param()
		if fieldParamTags[valErr.Tag()] {
			param = snakeCase(param)
		}

		parts = append(parts, strings.NewReplacer("{field}", field, "{param}", param).Replace(template))
	}

	return strings.Join(parts, "; ")
}

func snakeCase(name string) string {
	var b strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		b.WriteRune(r)
	}

	return b.String()
}
