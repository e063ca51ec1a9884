package secret

import "errors"

var (
	// ErrMissingEnv is returned when ${VAR} names an unset variable.
	ErrMissingEnv = errors.New("secret: missing environment variable")

	// ErrUnknownProvider is returned for a reference to an unregistered provider.
	ErrUnknownProvider = errors.New("secret: unknown provider")

	// ErrEmptySecret is returned by a strict resolver for an empty value.
	ErrEmptySecret = errors.New("secret: empty value")

	// ErrNotFound is returned when a provider has no value for a ref.
	ErrNotFound = errors.New("secret: not found")

	// ErrInvalidRef is returned for a malformed ref.
	ErrInvalidRef = errors.New("secret: invalid reference")
)
