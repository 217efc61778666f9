package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
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

// From maps a service error onto an HTTP status and code.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, domainerr.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, domainerr.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, domainerr.ErrConflict):
		return New(http.StatusConflict, "conflict", err)
	case errors.Is(err, context.DeadlineExceeded):
		return New(http.StatusGatewayTimeout, "timeout", err)
	case errors.Is(err, context.Canceled):
		return New(499, "canceled", err)
	default:
		return New(http.StatusInternalServerError, "internal", err)
	}
}
