// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

// Package errcode defines the closed error taxonomy used by the service
// layer. Services never return raw storage or infrastructure errors;
// expected conditions map to a Code and handlers switch on CodeOf.
package errcode

import (
	"errors"
	"fmt"
)

type Code string

const (
	Unauthenticated      Code = "UNAUTHENTICATED"
	Forbidden            Code = "FORBIDDEN"
	NotFound             Code = "NOT_FOUND"
	Unexpected           Code = "UNEXPECTED"
	Validation           Code = "VALIDATION"
	Conflict             Code = "CONFLICT"
	NoActiveOrganization Code = "NO_ACTIVE_ORGANIZATION"
	Unhandled            Code = "UNHANDLED"
)

type Error struct {
	Code    Code
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes errors.Is match any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// IsCode reports whether the error chain carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// CodeOf extracts the taxonomy code from an error chain.
// Errors produced outside the service layer report Unhandled.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unhandled
}

// MessageOf returns the user-facing message for an error chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Unexpected error."
}
