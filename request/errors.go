package request

import "errors"

var (
	// ErrInvalidPostprocessor indicates a nil postprocessor or empty name.
	ErrInvalidPostprocessor = errors.New("request: invalid postprocessor")

	// ErrDuplicatePostprocessor indicates a name already owned by another type.
	ErrDuplicatePostprocessor = errors.New("request: postprocessor name already registered")
)
