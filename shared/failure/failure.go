// Package failure carries client-facing errors with their HTTP status. Anything else is reported as a 500.
package failure

import (
	"errors"
	"net/http"
)

const genericMessage = "internal server error"

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ForbiddenError is returned when the caller's role is not granted the route.
var ForbiddenError error = New(http.StatusForbidden, "You don't have the required permissions")

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest keeps err's text as the public message. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func from(err error) (*Failure, bool) {
	var fail *Failure

	return fail, errors.As(err, &fail)
}

// GetCode finds the outermost Failure in err's chain, defaulting to 500.
func GetCode(err error) int {
	if fail, ok := from(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// PublicMessage is the text safe to return to a client. Server-side failures never leak their cause.
func PublicMessage(err error) string {
	if fail, ok := from(err); ok && fail.Code < http.StatusInternalServerError {
		return fail.Message
	}

	return genericMessage
}
