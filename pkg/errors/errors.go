// Package errors adds stack traces to errors crossing package boundaries.
package errors

import "github.com/go-errors/errors"

// ErrorWithStack wraps err with the caller's stack. A nil err stays nil.
func ErrorWithStack(err error) error {
	if err != nil {
		return errors.Wrap(err, 1)
	}
	return err
}
