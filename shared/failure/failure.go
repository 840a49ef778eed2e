// Package failure carries business errors together with the HTTP status they map to.
package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = New(http.StatusForbidden, "You don't have the required permissions")

// New returns a Failure with the given status code and message.
func New(code int, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

// Error returns the message only; the code travels separately.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict is for requests that clash with current state: a full slot, a reservation that already exists.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// UnprocessableEntity is for well formed requests that break a business rule: no credits, past the cutoff.
func UnprocessableEntity(msg string) error {
	return New(http.StatusUnprocessableEntity, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// From unwraps the Failure in err's chain, if any.
func From(err error) (*Failure, bool) {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail, true
	}

	return nil, false
}

// GetCode returns the status of the Failure in err's chain, 500 when there is none.
func GetCode(err error) int {
	if fail, ok := From(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}
