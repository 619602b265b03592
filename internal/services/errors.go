package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError carries the HTTP status a failure maps to, so handlers never
// have to inspect message text to pick a status code.
type ServiceError struct {
	Status  int
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: http.StatusNotFound, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: http.StatusUnauthorized, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Status: http.StatusForbidden, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Status: http.StatusConflict, Message: msg}
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}
	return http.StatusInternalServerError
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
