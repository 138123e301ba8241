package contract

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InternalError          ErrorCode = "INTERNAL_ERROR"
	BadRequest             ErrorCode = "BAD_REQUEST"
	InvalidParameterValue  ErrorCode = "INVALID_PARAMETER_VALUE"
	EndpointNotFound       ErrorCode = "ENDPOINT_NOT_FOUND"
	ResourceDoesNotExist   ErrorCode = "RESOURCE_DOES_NOT_EXIST"
	NotImplemented         ErrorCode = "NOT_IMPLEMENTED"
	TemporarilyUnavailable ErrorCode = "TEMPORARILY_UNAVAILABLE"
)

type Error struct {
	Code    ErrorCode `json:"error_code"`
	Message string    `json:"message"`
	Inner   error     `json:"-"`
}

func NewError(code ErrorCode, message string) *Error {
	return NewErrorWith(code, message, nil)
}

func NewErrorWith(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Inner:   err,
	}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s", msg, e.Inner)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Inner
}

//nolint:cyclop
func (e *Error) StatusCode() int {
	switch e.Code {
	case BadRequest, InvalidParameterValue:
		return http.StatusBadRequest
	case EndpointNotFound, ResourceDoesNotExist:
		return http.StatusNotFound
	case NotImplemented:
		return http.StatusNotImplemented
	case TemporarilyUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
