// Package common defines shared constants and sentinel errors used across
// the RecipeBox server and CLI. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token verification errors.
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMalformedToken   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
	ErrMissingSubject   = errors.New("token has no subject")

	// Gateway input errors. This one is not turned into a Deny policy.
	ErrMalformedAuthHeader = errors.New("invalid Authorization header format")

	// Validation errors.
	ErrEmptyBody            = errors.New("request body is empty")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMalformedJSON        = errors.New("malformed json")
	ErrMissingID            = errors.New("missing id parameter")

	// Uniqueness errors.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
