/*
Package errs provides the application error type and error code constants for
the АлёГараж backend.

This file defines the Error struct, which implements the standard error
interface and carries a business code, a user-facing message, and the HTTP
status the error is reported with. User-facing messages are Russian: the
client routes them onto form fields by keyword, so the wording here is part of
the external behavior, not cosmetics.
*/
package errs

import (
	"fmt"
	"net/http"

	"alegarazh/internal/pkg/logx"
)

// Error is the application error used across the backend handlers.
type Error struct {
	// Code is the business error code (see constants).
	Code int

	// Message is the user-facing description, rendered verbatim by clients.
	Message string

	// Status is the HTTP status code this error maps to.
	Status int
}

// Error implements the standard error interface.
func (e Error) Error() string {
	return fmt.Sprintf("error %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// New builds an *Error from a registered error code. Optional details are
// applied printf-style when the registered message contains placeholders.
// An unregistered code degrades to ErrUnknown instead of panicking.
func New(code int, details ...any) *Error {
	template, ok := registry[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unregistered error code"),
			"error code missing from registry",
			"requested_code", code,
		)
		template = registry[ErrUnknown]
	}

	e := template

	if e.Status == 0 {
		e.Status = http.StatusBadRequest
	}

	if len(details) > 0 {
		e.Message = fmt.Sprintf(e.Message, details...)
	}

	return &e
}
