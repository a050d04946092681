// Package common defines the error taxonomy shared by repositories, services
// and the HTTP layer. Callers classify errors with errors.Is against the
// class sentinels (ErrValidation, ErrNotFound, ...).
package common

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// Validation.
var (
	ErrResumeMissing      = fmt.Errorf("%w: please upload your resume before applying", ErrValidation)
	ErrJobInactive        = fmt.Errorf("%w: this job is no longer active", ErrValidation)
	ErrInvalidSalaryRange = fmt.Errorf("%w: minimum salary cannot be greater than maximum salary", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidTransition  = fmt.Errorf("%w: status transition not allowed", ErrValidation)
	ErrInvalidFile        = fmt.Errorf("%w: invalid file", ErrValidation)
)

// Not found.
var (
	ErrJobNotFound          = fmt.Errorf("%w: job not found", ErrNotFound)
	ErrApplicationNotFound  = fmt.Errorf("%w: application not found", ErrNotFound)
	ErrVerificationNotFound = fmt.Errorf("%w: verification not found", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification not found", ErrNotFound)
	ErrPrincipalNotFound    = fmt.Errorf("%w: user not found", ErrNotFound)
)

// Forbidden.
var (
	ErrCompanyNotVerified = fmt.Errorf("%w: company must be verified to post jobs", ErrForbidden)
	ErrNotOwner           = fmt.Errorf("%w: not authorized to access this resource", ErrForbidden)
	ErrRoleNotAllowed     = fmt.Errorf("%w: role is not authorized to access this route", ErrForbidden)
)

// Conflict.
var (
	ErrDuplicateApplication = fmt.Errorf("%w: you have already applied for this job", ErrConflict)
	ErrEmailTaken           = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrJobAlreadySaved      = fmt.Errorf("%w: job already saved", ErrConflict)
)

// Authentication.
var (
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrAccountInactive     = fmt.Errorf("%w: account is deactivated", ErrUnauthorized)
	ErrInvalidToken        = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrTokenExpired        = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrRefreshTokenExpired = fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
	ErrMissingToken        = fmt.Errorf("%w: not authorized to access this route", ErrUnauthorized)
)

// Validationf builds an ad-hoc validation error carrying a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Message strips the class prefix from a classified error so the remainder
// can be shown to API callers.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, class := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrUnauthorized, ErrInternal} {
		prefix := class.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
