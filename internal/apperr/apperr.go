// Package apperr declares the predefined error values shared by both
// services. Codes are stable and part of the API contract.
package apperr

import "github.com/trinhdvt/storefront/pkg/apperror"

var (
	ErrProductNotFound = apperror.NewNotFound("PRODUCT_NOT_FOUND", "Product not found")
	ErrUserNotFound    = apperror.NewNotFound("USER_NOT_FOUND", "User not found")

	ErrRequestPayloadNotValid = apperror.NewInvalid("REQUEST_PAYLOAD_NOT_VALID", "Request payload is not valid")

	ErrDatabaseFailure = apperror.NewPersistence("DATABASE_FAILURE", "Could not reach the database")

	// ErrNoUsersFound is kept for contract compatibility with older
	// clients. An empty listing is a normal 200 response; nothing
	// returns this value anymore.
	ErrNoUsersFound = apperror.NewNoResults("NO_USERS_FOUND", "No users found in database")
)
