package persist

import "errors"

// ErrMalformed indicates the file is not a valid system document.
var ErrMalformed = errors.New("persist: malformed system file")

// Error wraps a load or save failure with the file it concerns.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
