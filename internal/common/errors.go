package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("Operation not permitted")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")

	// Duplicate-field errors. Registration collapses both into one message
	// so the caller cannot tell which field collided.
	ErrEmailExists           = errors.New("Email already exists")
	ErrNicknameExists        = errors.New("Nickname already exists")
	ErrEmailOrNicknameExists = errors.New("Email or Nickname already exists")

	// Authentication outcomes. Unknown email and wrong password share one
	// message; locked and unverified accounts are reported distinctly.
	ErrIncorrectCredentials = errors.New("Incorrect email or password.")
	ErrAccountLocked        = errors.New("Account locked due to too many failed login attempts.")
	ErrEmailNotVerified     = errors.New("Email not verified")

	// Pagination bound violations, each naming the offending parameter.
	ErrSkipNegative  = errors.New("Skip integer cannot be less than 0")
	ErrLimitTooSmall = errors.New("Limit integer cannot be less than 1")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrIncorrectCredentials) ||
		errors.Is(err, ErrEmailNotVerified) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrAccountLocked) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrNicknameExists) ||
		errors.Is(err, ErrEmailOrNicknameExists) ||
		errors.Is(err, ErrSkipNegative) ||
		errors.Is(err, ErrLimitTooSmall) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusUnprocessableEntity
	}

	// The unique indexes on users are the authoritative duplicate guard;
	// a 23505 that slipped past the advisory pre-check is still a 400.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
