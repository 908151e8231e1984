package users

import (
	"errors"
	"fmt"
)

// Kind identifies which APIError case a value belongs to.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindParse
	KindNotFound
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// APIError is the closed set of failures returned by Service.
// It is implemented only by *NetworkError, *ParseError, *NotFoundError
// and *ServerError.
type APIError interface {
	error
	Kind() Kind
	apiError()
}

// NetworkError reports a transport failure before a status code was obtained.
type NetworkError struct {
	Message string
}

// NewNetworkError creates a new network error
func NewNetworkError(message string) *NetworkError {
	return &NetworkError{Message: message}
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %s", e.Message) }
func (e *NetworkError) Kind() Kind    { return KindNetwork }
func (*NetworkError) apiError()       {}

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	Message string
}

// NewParseError creates a new parse error
func NewParseError(message string) *ParseError {
	return &ParseError{Message: message}
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %s", e.Message) }
func (e *ParseError) Kind() Kind    { return KindParse }
func (*ParseError) apiError()       {}

// NotFoundError reports an explicit "resource absent" status.
type NotFoundError struct{}

func (*NotFoundError) Error() string { return "resource not found" }
func (*NotFoundError) Kind() Kind    { return KindNotFound }
func (*NotFoundError) apiError()     {}

// Is makes every *NotFoundError match ErrNotFound.
func (*NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ServerError reports any other non-success status.
type ServerError struct {
	Code uint16
}

// NewServerError creates a new server error
func NewServerError(code uint16) *ServerError {
	return &ServerError{Code: code}
}

func (e *ServerError) Error() string { return fmt.Sprintf("server error: %d", e.Code) }
func (e *ServerError) Kind() Kind    { return KindServer }
func (*ServerError) apiError()       {}

// ErrNotFound is returned for every "not found" response.
var ErrNotFound = &NotFoundError{}

// AsAPIError extracts the APIError from err, if any.
func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or 0 when err is not an APIError.
func KindOf(err error) Kind {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind()
	}
	return 0
}
