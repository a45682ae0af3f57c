package errors

import "errors"

var (
	// ErrFieldNotFound indicates that the referenced field id is unknown
	ErrFieldNotFound = errors.New("field not found")

	// ErrCustomerNotFound indicates that the referenced customer id is unknown
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrUnauthorized indicates that the caller's identity is not on the allow-list
	ErrUnauthorized = errors.New("unauthorized")
)
