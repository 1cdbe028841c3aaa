// Package skerr wraps github.com/pkg/errors so that every error created or
// wrapped in this module carries the stack of the place it was created.
//
// Use Fmt to create an error and Wrap/Wrapf to add context to an error
// returned from another package. errors.Is and errors.As see through the
// wrapping.
package skerr

import (
	"github.com/pkg/errors"
)

// Fmt is like fmt.Errorf, but records the call stack.
func Fmt(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Wrap adds the call stack to err. Returns nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(err)
}

// Wrapf prefixes err with the formatted message, "<msg>: <err>", and records
// the call stack. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
