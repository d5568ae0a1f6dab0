package auth

import "errors"

// Errors returned by JWTService. The API layer maps the token errors to 401.
var (
	// ErrInvalidToken covers malformed tokens, bad signatures, unexpected
	// algorithms and tokens that are not access tokens.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once exp has passed, allowing for clock skew.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned while nbf is still in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken is returned for an empty token string.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMissingSubject is returned when a token is requested for a blank subject.
	ErrMissingSubject = errors.New("token subject is required")

	// ErrWeakSecret is returned when auth.jwt_secret is shorter than 32 characters.
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
)
