// Package errdefer runs cleanup operations at the end of a function
// and reports their failures through the function's error return.
package errdefer

import (
	"errors"
	"io"
)

// Close calls Close on the given Closer,
// and joins any error returned with the given error.
//
// Use it inside a defer statement with a named return.
func Close(err *error, closer io.Closer) {
	Run(err, closer.Close)
}

// Run calls fn and joins any error it returns with the given error.
//
// Use it inside a defer statement with a named return
// for cleanup that isn't an io.Closer.
func Run(err *error, fn func() error) {
	*err = errors.Join(*err, fn())
}
