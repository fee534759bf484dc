package body

import "errors"

var (
	// ErrNotFound indicates no body with the requested ID is in the document.
	ErrNotFound = errors.New("body: not found")

	// ErrInvalid indicates a body with a non-positive mass or a NaN/Inf field.
	ErrInvalid = errors.New("body: invalid body")
)
