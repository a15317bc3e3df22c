// Package apperr defines the failure classes shared by the staking core.
// Handlers map each class to an HTTP status; services never swallow them.
package apperr

import "errors"

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

type AlreadyClaimedError struct {
	Msg string
}

func (e *AlreadyClaimedError) Error() string { return e.Msg }

type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string { return "unauthorized" }

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func Validation(msg string) error { return &ValidationError{Msg: msg} }

func InvalidState(msg string) error { return &InvalidStateError{Msg: msg} }

func AlreadyClaimed(msg string) error { return &AlreadyClaimedError{Msg: msg} }

func Unauthorized() error { return &UnauthorizedError{} }

func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsInvalidState(err error) bool {
	var e *InvalidStateError
	return errors.As(err, &e)
}

func IsAlreadyClaimed(err error) bool {
	var e *AlreadyClaimedError
	return errors.As(err, &e)
}

func IsUnauthorized(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}
