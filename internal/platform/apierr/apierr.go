package apierr

import "fmt"

// Codes used by the HTTP surface. Only empty_request aborts a publication
// before any external call; everything else is recorded per artifact kind.
const (
	CodeUnauthorized = "unauthorized"
	CodeEmptyRequest = "empty_request"
	CodeBadRequest   = "bad_request"
	CodeInternal     = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
