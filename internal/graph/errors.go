package graph

import (
	"errors"
	"log/slog"

	"github.com/ondetemapp/ondetem/internal/auth"
	"github.com/ondetemapp/ondetem/internal/services"
)

const (
	codeUnauthenticated    = "UNAUTHENTICATED"
	codeBadUserInput       = "BAD_USER_INPUT"
	codeNotFound           = "NOT_FOUND"
	codeFailedPrecondition = "FAILED_PRECONDITION"
	codeInternal           = "INTERNAL_SERVER_ERROR"
)

// codedError carries the code extension the mobile client branches on.
// graphql-go picks Extensions up through the gqlerrors.ExtendedError
// interface, so responses expose {message, code} and nothing else.
type codedError struct {
	message string
	code    string
}

func (e *codedError) Error() string {
	return e.message
}

func (e *codedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func coded(message, code string) error {
	return &codedError{message: message, code: code}
}

// wrapError maps service and auth errors onto coded GraphQL errors. Unknown
// errors are logged and collapsed to a generic internal failure so storage
// details never reach the client.
func wrapError(operation string, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrFirebaseUIDMismatch):
		return coded(err.Error(), codeUnauthenticated)

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrProductNameRequired),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrDiscountTooHigh),
		errors.Is(err, services.ErrInvalidPercentage),
		errors.Is(err, services.ErrSupermarketRequired),
		errors.Is(err, services.ErrMarketNameRequired),
		errors.Is(err, services.ErrInvalidLatitude),
		errors.Is(err, services.ErrInvalidLongitude):
		return coded(err.Error(), codeBadUserInput)

	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrSupermarketNotFound):
		return coded(err.Error(), codeNotFound)

	case errors.Is(err, services.ErrSupermarketHasProducts):
		return coded(err.Error(), codeFailedPrecondition)
	}

	slog.Error("unhandled resolver error", "operation", operation, "error", err)
	return coded("Internal server error", codeInternal)
}
