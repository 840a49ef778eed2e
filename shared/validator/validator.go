package validator

import (
	"encoding/json"
	"fmt"
	"galpao/config"
	"galpao/shared/failure"
	"galpao/shared/password"
	"io"

	val "github.com/go-playground/validator/v10"
)

const (
	selfTag     = "galpao"
	passwordTag = "password"
)

// SelfValidator is implemented by values that check themselves against the running config,
// such as a slot that must be one of the configured windows.
type SelfValidator interface {
	Validate(cfg *config.Config) error
}

// Normalizer is implemented by requests that clean their own fields after decoding.
type Normalizer interface {
	Normalize()
}

var validate *val.Validate

func init() {
	cfg := config.Get()

	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	if err := validate.RegisterValidation(selfTag, selfValidation(cfg)); err != nil {
		panic(err)
	}

	// bcrypt input limit, in bytes
	err := validate.RegisterValidation(passwordTag, func(fl val.FieldLevel) bool {
		return len(fl.Field().String()) <= password.MaxLength
	})
	if err != nil {
		panic(err)
	}
}

func selfValidation(cfg *config.Config) val.Func {
	return func(fl val.FieldLevel) bool {
		field := fl.Field()
		if !field.CanInterface() {
			return false
		}

		self, ok := field.Interface().(SelfValidator)
		if !ok {
			return false
		}

		return self.Validate(cfg) == nil
	}
}

// Validate decodes a JSON body into data, normalizes it when data is a Normalizer and validates the result.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("invalid request body: %w", err)) //nolint:wrapcheck
	}

	if normalizer, ok := any(data).(Normalizer); ok {
		normalizer.Normalize()
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return check(validate.Struct(data))
}

// ValidateVar validates a single value against a tag list such as "required,min=4".
func ValidateVar(field any, tag string) error {
	return check(validate.Var(field, tag))
}

func check(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
}
